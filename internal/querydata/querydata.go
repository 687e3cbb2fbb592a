// Package querydata - пакет для разбора строки запроса
package querydata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// ErrMalformedRequest - строка запроса не содержит пути
var ErrMalformedRequest = errors.New("incorrect request format: not HTTP")

// размер буфера для чтения строки запроса
const readBufSize = 4096

// Request - данные строки запроса
type Request struct {
	rawLine  string
	method   string
	path     string
	protocol string
}

// RawLine - строка запроса без символов конца строки
func (q *Request) RawLine() string {
	return q.rawLine
}

// Method - метод запроса
func (q *Request) Method() string {
	return q.method
}

// Path - путь до запрашиваемого ресурса
func (q *Request) Path() string {
	return q.path
}

// Protocol - версия протокола, может быть пустой
func (q *Request) Protocol() string {
	return q.protocol
}

// Read - читаем из r ровно одну строку и разбираем ее как строку запроса.
// Заголовки, идущие после строки запроса, не читаются.
func Read(r io.Reader) (*Request, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, readBufSize)
	}

	// чтение блокируется, пока не придет \n или клиент не закроет соединение
	line, err := br.ReadString('\n')
	if err != nil {
		// клиент закрыл соединение, не прислав ни одного байта
		if errors.Is(err, io.EOF) && line == "" {
			return nil, fmt.Errorf("клиент закрыл соединение до строки запроса: %w", err)
		}
		// строка без \n перед EOF все равно разбирается
		if !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	return ParseLine(line)
}

// ParseLine - разбираем строку запроса вида "<METHOD> <PATH> <VERSION>"
func ParseLine(line string) (*Request, error) {
	line = strings.TrimRight(line, "\r\n")

	// строка запроса может содержать более одного пробела, например:
	// GET        /                HTTP/1.1
	fields := strings.Fields(line)
	// должны быть хотя бы метод и путь
	if len(fields) < 2 {
		return nil, fmt.Errorf("не удалось распарсить строку запроса %q: %w", line, ErrMalformedRequest)
	}

	// декодируем path на случай, если он не в латинице
	path, err := url.PathUnescape(fields[1])
	if err != nil {
		return nil, fmt.Errorf("не удалось декодировать путь %q: %w: %w", fields[1], ErrMalformedRequest, err)
	}

	q := &Request{
		rawLine: line,
		method:  fields[0],
		path:    path,
	}
	if len(fields) > 2 {
		q.protocol = fields[2]
	}

	return q, nil
}
