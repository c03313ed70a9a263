package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/config"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/logging"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/platform"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/service"
)

// commandContext is cancelled on SIGINT or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// newArtifactService loads config.lua and builds the service with a logger
// writing to logOut. The returned function flushes the logger.
func newArtifactService(ctx context.Context, logOut io.Writer) (*service.ArtifactService, func(), error) {
	detector := platform.NewDetector()

	loaded, err := config.Load(ctx, detector)
	if err != nil {
		var parseErr *config.ParseError
		if errors.As(err, &parseErr) {
			return nil, nil, fmt.Errorf("load config: %s", config.FormatError(err, false))
		}
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(loaded.Config.LogLevel, logOut)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	flush := func() { _ = logger.Sync() }

	for _, f := range loaded.Findings {
		logger.Warn("possible credential in config file",
			"path", loaded.Paths.Config,
			"line", f.Line,
			"kind", f.PatternName,
			"preview", f.Preview)
	}

	svc, err := service.NewArtifactService(loaded, service.Options{
		Detector: detector,
		Logger:   logger,
	})
	if err != nil {
		flush()
		return nil, nil, err
	}
	return svc, flush, nil
}
