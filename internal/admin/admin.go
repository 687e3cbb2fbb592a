// Package admin - служебный http сервер со статусом воркера.
//
// Отдает два эндпоинта:
//   - GET /health - жив ли процесс
//   - GET /api/status - настройки и счетчики обработанных соединений
//
// Сервер не участвует в обработке клиентских соединений и только читает счетчики.
package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kostushka/webworker/internal/config"
	"github.com/Kostushka/webworker/internal/log"
	"github.com/Kostushka/webworker/internal/stats"
)

const shutdownTimeout = 5 * time.Second

// HealthResponse - ответ /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ServerInfo - настройки воркера в ответе /api/status
type ServerInfo struct {
	Address        string `json:"address"`
	Root           string `json:"root"`
	Name           string `json:"name"`
	LegacyNewlines bool   `json:"legacy_newlines"`
}

// StatusResponse - ответ /api/status
type StatusResponse struct {
	Status      string         `json:"status"`
	Server      ServerInfo     `json:"server"`
	Connections stats.Snapshot `json:"connections"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Server - служебный http сервер
type Server struct {
	cfg        *config.Data
	stats      *stats.Stats
	httpServer *http.Server
}

// New - создать служебный сервер
func New(cfg *config.Data, st *stats.Stats) *Server {
	s := &Server{
		cfg:   cfg,
		stats: st,
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Admin.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Router - маршруты служебного сервера
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.GET("/api/status", s.handleStatus)

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Status: "running",
		Server: ServerInfo{
			Address:        s.cfg.ListenAddress(),
			Root:           s.cfg.Server.Root,
			Name:           s.cfg.Server.Name,
			LegacyNewlines: s.cfg.HTML.LegacyNewlines,
		},
		Connections: s.stats.Snapshot(),
		Timestamp:   time.Now(),
	})
}

// Start - запустить сервер и остановить его при отмене ctx
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		log.Infof("служебный сервер запущен на %s", s.cfg.Admin.Addr)

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("не удалось запустить служебный сервер: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("не удалось остановить служебный сервер: %w", err)
	}

	log.Infof("служебный сервер остановлен")

	return nil
}
