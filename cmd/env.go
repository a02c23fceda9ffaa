package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/abhisek/examiz/internal/config"
	"github.com/abhisek/examiz/internal/logger"
	"github.com/abhisek/examiz/internal/media"
	"github.com/abhisek/examiz/internal/scoring"
	"github.com/abhisek/examiz/internal/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// env is the shared runtime of a command: configuration with flag
// overrides applied, a logger, scoring bands and, optionally, the store.
type env struct {
	cfg     *config.Config
	log     zerolog.Logger
	scoring scoring.Config
	store   *store.Store

	closers []io.Closer
}

type envOpts struct {
	// withStore opens the results database.
	withStore bool

	// logToFile sends logs to the log file instead of stderr. Set for the
	// TUI, which owns the terminal.
	logToFile bool
}

func openEnv(cmd *cobra.Command, opts envOpts) (*env, error) {
	cfg := config.Load()
	applyFlags(cmd, cfg)

	e := &env{cfg: cfg}

	var dbPath string
	if opts.withStore || opts.logToFile {
		p, err := resolveDBPath(cmd, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		dbPath = p
	}

	var w io.Writer = os.Stderr
	if opts.logToFile {
		f, err := logger.OpenFile(cfg.ResolveLogFile(dbPath))
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, f)
		w = f
	}
	e.log = logger.Setup(cfg.LogLevel, cfg.LogFormat, w)

	sc, err := scoring.ConfigFromFile(cfg.BandsFile)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load bands: %w", err)
	}
	e.scoring = sc

	if opts.withStore {
		st, err := store.Open(dbPath)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		e.store = st
		e.closers = append(e.closers, st)
		e.log.Debug().Str("db", dbPath).Msg("store opened")
	}
	return e, nil
}

// applyFlags lets persistent flags override environment configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("bands"); v != "" {
		cfg.BandsFile = v
	}
}

func (e *env) media() media.Config {
	return media.Config{
		TickInterval: e.cfg.MediaTick,
		StopAtCueEnd: e.cfg.StopAtCueEnd,
	}
}

func (e *env) component(name string) *zerolog.Logger {
	l := logger.Component(e.log, name)
	return &l
}

// Close releases the store and log file, newest first.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
	e.closers = nil
}
