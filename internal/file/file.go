// Package file - пакет с функциями для работы с файлами
package file

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Kostushka/webworker/internal/connection/consts"
	"github.com/Kostushka/webworker/internal/contenttype"
)

const (
	// DateToken - заменяется на текущие дату и время
	DateToken = "<cs371date>"
	// ServerToken - заменяется на имя сервера
	ServerToken = "<cs371server>"
)

// ErrRead - ошибка чтения отдаваемого файла, в отличие от ошибки записи в сокет
var ErrRead = errors.New("ошибка чтения файла")

// Open - открываем файл по пути
func Open(path string) (*os.File, os.FileInfo, error) {
	// открываем запрашиваемый файл
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, nil, err
	}

	// получить информацию о файле
	fi, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, nil, err
	}

	return f, fi, nil
}

// Streamer - пишет тело ответа в зависимости от типа содержимого
type Streamer struct {
	ServerName string
	// LegacyNewlines - не переносить концы строк html файла в тело ответа
	LegacyNewlines bool
	// Now - источник времени для подстановки, по умолчанию time.Now
	Now func() time.Time
}

// Stream - отправляем клиенту содержимое файла, возвращаем число записанных байт
func (s *Streamer) Stream(w io.Writer, r io.Reader, ct contenttype.ContentType) (int64, error) {
	if ct.IsText() {
		return s.SendHTML(w, r)
	}

	return Send(w, r)
}

// SendEmpty - тело ответа из одной пустой строки
func (s *Streamer) SendEmpty(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, "\n")

	return int64(n), err
}

// SendHTML - отправляем html файл построчно, подставляя дату и имя сервера
func (s *Streamer) SendHTML(w io.Writer, r io.Reader) (int64, error) {
	now := s.Now
	if now == nil {
		now = time.Now
	}

	br := bufio.NewReaderSize(r, consts.BufSize)

	var written int64

	for {
		// длина строки не ограничена размером буфера
		line, readErr := br.ReadString('\n')
		if line != "" {
			if s.LegacyNewlines {
				line = strings.TrimRight(line, "\r\n")
			}

			replacer := strings.NewReplacer(
				DateToken, now().Format(time.UnixDate),
				ServerToken, s.ServerName,
			)

			n, err := replacer.WriteString(w, line)
			written += int64(n)

			if err != nil {
				return written, err
			}
		}

		// читаем файл, пока не встретим EOF
		if errors.Is(readErr, io.EOF) {
			return written, nil
		}

		if readErr != nil {
			return written, fmt.Errorf("%w: %w", ErrRead, readErr)
		}
	}
}

// Send - отправляем клиенту файл без изменений
func Send(w io.Writer, r io.Reader) (int64, error) {
	// буфер фиксированного размера: файл может не поместиться в память целиком
	fileBuf := make([]byte, consts.BufSize)

	var written int64

	for {
		n, readErr := r.Read(fileBuf)
		// сначала отдаем прочитанное, даже если вместе с ним пришел EOF
		if n > 0 {
			m, err := w.Write(fileBuf[:n])
			written += int64(m)

			if err != nil {
				return written, err
			}

			if m != n {
				return written, io.ErrShortWrite
			}
		}

		// читаем файл, пока не встретим EOF
		if errors.Is(readErr, io.EOF) {
			return written, nil
		}

		if readErr != nil {
			return written, fmt.Errorf("%w: %w", ErrRead, readErr)
		}
	}
}
