package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nulzo/greencode-advisor/cmd"
	"github.com/nulzo/greencode-advisor/internal/advisor"
	"github.com/nulzo/greencode-advisor/internal/cli"
	"github.com/nulzo/greencode-advisor/internal/config"
	"github.com/nulzo/greencode-advisor/internal/llm"
	"github.com/nulzo/greencode-advisor/internal/platform/logger"
	"github.com/nulzo/greencode-advisor/internal/platform/otel"
	"github.com/nulzo/greencode-advisor/internal/server"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed to load config: %v\n", cli.CrossMark(), err)
		os.Exit(1)
	}

	log := logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cli.Enabled(),
	})
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := otel.InitTracer(server.ServiceName, cmd.AppVersion, cfg.Tracing.Enabled, log, os.Stdout)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	if cfg.Updates.Check {
		go cmd.CheckForUpdates(ctx, cmd.NewUpdateChecker(), log)
	}

	for _, p := range llm.Providers {
		if p.RequiresKey() && cfg.DefaultKey(p) != "" {
			log.Info(fmt.Sprintf("%s %s", cli.CheckMark(), cli.Bold(p.String())), zap.String("credential", "server default"))
		}
	}

	dispatcher := advisor.FromConfig(cfg, log)
	srv := server.New(cfg, log, dispatcher)

	log.Info(fmt.Sprintf("%s %s %s", cli.Arrow(), cli.Banner("GreenCode Advisor"), cli.Dim(cmd.AppVersion)))
	if err := srv.Run(ctx); err != nil {
		log.Error("Server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
