package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eshopadmin/internal/config"
	"eshopadmin/internal/domain"
	"eshopadmin/internal/http/handlers"
	applog "eshopadmin/internal/log"
	"eshopadmin/internal/repos"
)

func main() {
	cfg := config.Load()

	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.Warn("log.file.open", err, map[string]any{"path": cfg.LogFile})
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.Setup(out, cfg.LogLevel)
	cfg.LogStartup()

	g, err := repos.OpenDB(repos.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDSN,
		MaxOpenConns: cfg.MaxOpenConns,
		ConnLifetime: cfg.ConnLifetime,
		EnsureSchema: cfg.EnsureSchema,
	})
	if err != nil {
		var cerr *domain.ConnectionError
		if errors.As(err, &cerr) {
			applog.Fatal("db.connect", err, map[string]any{"driver": cerr.Driver})
		}
		applog.Fatal("db.open", err, nil)
	}
	defer g.Close()

	app := handlers.NewApp(cfg, g)

	go func() {
		applog.Event("server.listen", map[string]any{"port": cfg.Port})
		if err := app.Listen(":" + cfg.Port); err != nil {
			applog.Fail("server.listen", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		applog.Fail("server.shutdown", err, nil)
	}
	applog.Event("server.stopped", nil)
}
