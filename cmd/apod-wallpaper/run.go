package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/waeller/apod-wallpaper/internal/config"
	"github.com/waeller/apod-wallpaper/internal/log"
	"github.com/waeller/apod-wallpaper/internal/model"
	"github.com/waeller/apod-wallpaper/internal/pipeline"
	"github.com/waeller/apod-wallpaper/internal/report"
	"github.com/waeller/apod-wallpaper/internal/source"
	"github.com/waeller/apod-wallpaper/internal/store"
	"github.com/waeller/apod-wallpaper/internal/wallpaper"
)

// app holds the process level dependencies of a run so tests can replace
// the archive address, the filesystem, the clock and the wallpaper mechanism.
type app struct {
	baseURL   string
	fs        afero.Fs
	now       func() time.Time
	newSetter func(logger *slog.Logger) wallpaper.Setter
}

func newApp() *app {
	return &app{
		baseURL: source.BaseURL,
		fs:      afero.NewOsFs(),
		now:     time.Now,
		newSetter: func(logger *slog.Logger) wallpaper.Setter {
			return wallpaper.New(wallpaper.WithLogger(logger))
		},
	}
}

func (a *app) runRootCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	cfg.BaseURL = a.baseURL
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return a.run(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// buildConfig reads the flags and the optional mode argument.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	if len(args) > 0 {
		cfg.Mode = args[0]
	}

	var err error
	if cfg.DownloadDir, err = cmd.Flags().GetString("dir"); err != nil {
		return nil, err
	}
	if cfg.UsePictures, err = cmd.Flags().GetBool("pictures"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.Progress, err = cmd.Flags().GetBool("progress"); err != nil {
		return nil, err
	}
	if cfg.JSON, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.Seed, err = cmd.Flags().GetUint64("seed"); err != nil {
		return nil, err
	}
	if cfg.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run executes one wallpaper update and prints its outcome to stdout.
// The outcome is printed even when a step failed; the error is returned
// for the caller to report.
func (a *app) run(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	mode, err := model.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	src, err := source.NewClient(cfg.BaseURL,
		source.WithTimeout(cfg.Timeout),
		source.WithUserAgent(cfg.UserAgent),
		source.WithMaxPageSize(cfg.MaxPageSize),
		source.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	storeOpts := []store.Option{
		store.WithFs(a.fs),
		store.WithClock(a.now),
		store.WithLogger(logger),
	}
	if cfg.Progress {
		storeOpts = append(storeOpts, store.WithProgress(stderr))
	}
	st := store.New(cfg.DownloadPath(), storeOpts...)

	p := pipeline.DefaultPipeline(src, st, a.newSetter(logger),
		[]pipeline.Option{pipeline.WithLogger(logger)},
		pipeline.WithPipelineClock(a.now),
		pipeline.WithPipelineSeed(cfg.Seed),
	)

	run := model.NewRun(mode, a.now())
	runErr := p.Execute(ctx, run)

	var w report.Writer = report.NewSimpleWriter(stdout, report.WithVerbose(cfg.Verbose))
	if cfg.JSON {
		w = report.NewJSONWriter(stdout, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	}
	if _, err := w.Write(run); err != nil && runErr == nil {
		return fmt.Errorf("write report: %w", err)
	}
	return runErr
}
