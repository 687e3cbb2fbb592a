// Package connection - пакет с функциями, которые работают с клиентским соединением
package connection

import (
	"errors"
	"fmt"
	"io"
	"net"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Kostushka/webworker/internal/connection/consts"
	"github.com/Kostushka/webworker/internal/connection/headerdata"
	"github.com/Kostushka/webworker/internal/connection/types"
	"github.com/Kostushka/webworker/internal/contenttype"
	"github.com/Kostushka/webworker/internal/file"
	"github.com/Kostushka/webworker/internal/log"
	"github.com/Kostushka/webworker/internal/querydata"
)

// ErrTransportFault - ошибка чтения из клиентского сокета или записи в него
var ErrTransportFault = errors.New("ошибка передачи данных")

// Options - настройки обработки соединения
type Options struct {
	// RootPath - каталог, от которого отсчитываются пути из запросов
	RootPath string
	// ServerName - значение заголовка Server и подстановки в html
	ServerName string
	// LegacyNewlines - не переносить концы строк html файла в тело ответа
	LegacyNewlines bool
	// Now - источник времени, по умолчанию time.Now
	Now func() time.Time
}

// Summary - итог обработки соединения
type Summary struct {
	ID          string
	RemoteAddr  string
	Request     *querydata.Request
	Path        string
	Outcome     types.Outcome
	ContentType contenttype.ContentType
	BodyBytes   int64
	Duration    time.Duration
}

// Connection - структура с данными обрабатываемого соединения
type Connection struct {
	conn     net.Conn
	rootPath string
	header   *headerdata.HeaderData
	streamer *file.Streamer
	now      func() time.Time
	state    State
	id       string
	log      *log.Logger
}

// New - создать структуру с данными обрабатываемого соединения
func New(conn net.Conn, opts Options) *Connection {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	// одно имя для заголовка Server и для подстановки в html
	name := opts.ServerName
	if name == "" {
		name = consts.DefaultServerName
	}

	id := uuid.NewString()

	return &Connection{
		conn:     conn,
		rootPath: opts.RootPath,
		header:   headerdata.New(name, now),
		streamer: &file.Streamer{
			ServerName:     name,
			LegacyNewlines: opts.LegacyNewlines,
			Now:            now,
		},
		now:   now,
		state: Start,
		id:    id,
		log:   log.With("conn", id, "remote", conn.RemoteAddr().String()),
	}
}

// ID - идентификатор соединения в логах
func (c *Connection) ID() string {
	return c.id
}

// State - текущее состояние обработки
func (c *Connection) State() State {
	return c.state
}

func (c *Connection) transition(s State) {
	c.log.Debugf("%s -> %s", c.state, s)
	c.state = s
}

// ProcessingConn - обрабатываем клиентское соединение: один запрос, один ответ.
// Соединение закрывается ровно один раз на любом пути выхода.
func (c *Connection) ProcessingConn() (summary Summary, err error) {
	start := c.now()
	summary = Summary{
		ID:         c.id,
		RemoteAddr: c.conn.RemoteAddr().String(),
		Outcome:    types.NotFound,
	}

	defer func() {
		summary.Duration = c.now().Sub(start)
	}()
	// закрыть клиентское соединение
	defer c.close()

	c.log.Debugf("начинается работа с клиентским сокетом")

	// получить данные строки запроса
	c.transition(ParsingRequest)

	query, err := querydata.Read(c.conn)
	if err != nil {
		if !errors.Is(err, querydata.ErrMalformedRequest) {
			err = fmt.Errorf("%w: %w", ErrTransportFault, err)
		}

		c.log.Errorf(err)

		return summary, err
	}

	summary.Request = query

	// работаем с путем до файла, взятым из строки запроса
	c.transition(ResolvingType)

	path := filepath.Join(c.rootPath, query.Path())
	ct := contenttype.Resolve(path)
	summary.Path = path
	summary.ContentType = ct

	if !ct.Supported() {
		c.log.Infof("тип содержимого файла %q неизвестен, отдаем как %s", path, ct.MIME())
	}

	// открываем запрашиваемый файл
	f, fi, err := file.Open(path)
	if err != nil {
		// файла нет или его нельзя открыть - 404
		c.log.Infof("файл %q не найден: %v", path, err)
	} else {
		summary.Outcome = types.Found
		// закрыть файл
		defer closeFile(f, c.log)
	}

	// отправляем клиенту заголовки
	c.transition(WritingHeader)

	c.header.SetResponseData(&types.StatusData{
		Outcome:     summary.Outcome,
		ContentType: ct,
	})

	if err := c.header.WriteResponseHeader(c.conn); err != nil {
		err = fmt.Errorf("%w: не удалось отправить заголовки: %w", ErrTransportFault, err)
		c.log.Errorf(err)

		return summary, err
	}

	// отправить клиенту тело ответа
	c.transition(StreamingBody)

	var n int64

	switch {
	case summary.Outcome == types.NotFound:
		n, err = c.streamer.SendEmpty(c.conn)
	case fi.IsDir():
		c.log.Infof("%q - каталог, отдаем пустое тело", path)
		n, err = c.streamer.SendEmpty(c.conn)
	default:
		n, err = c.streamer.Stream(c.conn, f, ct)
	}

	summary.BodyBytes = n

	if err != nil {
		err = bodyError(n, err)
		c.log.Errorf(err)

		return summary, err
	}

	c.log.Debugf("клиенту отправлено тело ответа: %d байт", n)

	return summary, nil
}

// bodyError - ошибка отправки тела; частично отправленное тело остается как есть.
// Сбой чтения файла не считается ошибкой передачи данных.
func bodyError(n int64, err error) error {
	if errors.Is(err, file.ErrRead) {
		return fmt.Errorf("тело ответа отправлено не полностью (%d байт): %w", n, err)
	}

	return fmt.Errorf("%w: тело ответа отправлено не полностью (%d байт): %w", ErrTransportFault, n, err)
}

// close - закрываем соединение и переходим в конечное состояние
func (c *Connection) close() {
	c.transition(Closed)

	if err := c.conn.Close(); err != nil {
		c.log.Errorf(err)

		return
	}

	c.log.Debugf("клиентское соединение закрыто")
}

func closeFile(f io.Closer, l *log.Logger) {
	if err := f.Close(); err != nil {
		l.Errorf(err)
	}
}
