package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Kostushka/webworker/internal/admin"
	"github.com/Kostushka/webworker/internal/config"
	"github.com/Kostushka/webworker/internal/log"
	"github.com/Kostushka/webworker/internal/server"
	"github.com/Kostushka/webworker/internal/stats"
)

func main() {
	// получаем конфигурационные данные: файл, окружение, флаги
	cfg, err := config.NewConfigData(os.Args[1:])
	if err != nil {
		os.Exit(configExitCode(err))
	}

	// создаем логеры
	if err := log.New(cfg.Log.File, cfg.Log.Level); err != nil {
		log.Errorf(err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := stats.New()
	g, ctx := errgroup.WithContext(ctx)

	// служебный сервер со статусом
	if cfg.Admin.Enabled {
		g.Go(func() error {
			return admin.New(cfg, st).Start(ctx)
		})
	}

	g.Go(func() error {
		return server.New(cfg, st).Start(ctx)
	})

	if err := g.Wait(); err != nil {
		log.Errorf(err)
		stop()
		os.Exit(1)
	}
}

// configExitCode - код выхода при ошибке конфигурации; -h не ошибка
func configExitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	log.Errorf(err)

	return 2
}
