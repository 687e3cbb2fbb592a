// Package server - пакет с циклом приема клиентских соединений
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/Kostushka/webworker/internal/config"
	"github.com/Kostushka/webworker/internal/connection"
	"github.com/Kostushka/webworker/internal/connection/consts"
	"github.com/Kostushka/webworker/internal/connection/types"
	"github.com/Kostushka/webworker/internal/log"
	"github.com/Kostushka/webworker/internal/stats"
)

// сколько ждать завершения уже принятых соединений при остановке
const shutdownTimeout = 5 * time.Second

// Server - принимает соединения и обрабатывает каждое в отдельной горутине
type Server struct {
	cfg      *config.Data
	stats    *stats.Stats
	listener net.Listener
	wg       sync.WaitGroup
}

// New - создать сервер; st может быть nil
func New(cfg *config.Data, st *stats.Stats) *Server {
	if st == nil {
		st = stats.New()
	}

	return &Server{
		cfg:   cfg,
		stats: st,
	}
}

// Listen - открыть tcp сокет на адресе из конфигурации
func (s *Server) Listen() error {
	l, err := net.Listen("tcp", s.cfg.ListenAddress())
	if err != nil {
		return fmt.Errorf("не удалось открыть сокет %s: %w", s.cfg.ListenAddress(), err)
	}

	s.listener = l

	log.Infof("запуск сервера с адресом %s, корневой каталог %q", l.Addr(), s.cfg.Server.Root)

	return nil
}

// Addr - адрес, на котором слушает сервер
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Start - открыть сокет и принимать соединения до отмены ctx
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	return s.Serve(ctx)
}

// Serve - цикл приема соединений; Listen должен быть вызван заранее
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()

	for {
		// слушаем сокетные соединения (запросы)
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				log.Infof("прием соединений остановлен")

				return s.wait()
			}

			log.Errorf("не удалось принять соединение: %v", err)

			continue
		}

		log.Debugf("запрос на соединение от клиента %s принят", conn.RemoteAddr())

		s.wg.Add(1)
		// обрабатываем каждое клиентское соединение в отдельной горутине
		go func() {
			defer s.wg.Done()
			s.handle(conn)
		}()
	}
}

func (s *Server) handle(conn net.Conn) {
	if t := s.cfg.Server.ReadTimeout; t > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(t)); err != nil {
			log.Errorf(err)
		}
	}

	s.stats.Begin()

	c := connection.New(conn, connection.Options{
		RootPath:       s.cfg.Server.Root,
		ServerName:     s.cfg.Server.Name,
		LegacyNewlines: s.cfg.HTML.LegacyNewlines,
	})
	summary, err := c.ProcessingConn()

	s.stats.Done(summary, err)

	if summary.Request == nil {
		return
	}

	status := consts.StatusOK
	if summary.Outcome == types.NotFound {
		status = consts.StatusNotFound
	}

	// строка лога доступа
	log.Infof("\"%s\" %s %d %s %d %s conn=%s",
		summary.Request.RawLine(), summary.RemoteAddr, status,
		summary.ContentType.MIME(), summary.BodyBytes, summary.Duration, summary.ID)
}

// ждем завершения принятых соединений, но не дольше shutdownTimeout
func (s *Server) wait() error {
	done := make(chan struct{})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(shutdownTimeout):
		return fmt.Errorf("соединения не завершились за %s", shutdownTimeout)
	}
}
