package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eduwise/eduwise/internal/config"
	"github.com/eduwise/eduwise/internal/llm"
	"github.com/eduwise/eduwise/internal/logging"
	"github.com/eduwise/eduwise/internal/planner"
	"github.com/eduwise/eduwise/internal/questiongen"
	"github.com/eduwise/eduwise/internal/session"
	"github.com/eduwise/eduwise/internal/store"
)

// deps is everything a command needs, built from config and flags.
type deps struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *store.Store
	service *session.Service
	state   *session.State

	closers []io.Closer
}

// depsOptions selects the optional parts of newDeps.
type depsOptions struct {
	// llm builds a provider. Commands that only read stored data skip it.
	llm bool

	// tui disables console logging and tolerates a missing provider.
	tui bool

	// minAnswered overrides the configured analysis threshold when set.
	minAnswered int
}

// loadConfig reads the config file, environment and persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		cfg.User = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newDeps(cmd *cobra.Command, opts depsOptions) (_ *deps, err error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if opts.minAnswered > 0 {
		cfg.MinAnswered = opts.minAnswered
	}
	d := &deps{cfg: cfg}
	defer func() {
		if err != nil {
			d.Close()
		}
	}()

	level, _ := config.ParseLevel(cfg.LogLevel)
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, logCloser, err := logging.Setup(logging.Options{
		File:    cfg.LogFile,
		Level:   level,
		Console: verbose && !opts.tui,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	d.logger = logger
	d.closers = append(d.closers, logCloser)

	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st)

	r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	sd := session.Deps{
		Plans:   st.Plans(),
		Tests:   st.Tests(),
		Results: st.Results(),
		Settings: session.Settings{
			MinAnswered:           cfg.MinAnswered,
			WeightedQuestionCount: cfg.WeightedQuestionCount,
			DayQuestionCount:      cfg.DayQuestionCount,
			TopicQuestionCount:    cfg.TopicQuestionCount,
		},
		Logger: logger,
		Rand:   r,
	}

	if opts.llm {
		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
		if err != nil {
			if !opts.tui {
				return nil, fmt.Errorf("LLM provider not configured: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
			fmt.Fprintln(cmd.ErrOrStderr(), "AI features will be unavailable.")
			logger.Warn("llm provider unavailable", "error", err)
			provider = llm.Unavailable(err)
		}
		sd.Planner = planner.NewService(provider, planner.DefaultConfig(), logger)
		sd.Questions = questiongen.New(provider, questiongen.DefaultConfig(), logger, r)
	}

	d.service = session.NewService(sd)
	d.state = session.NewState(cfg.User)
	d.logger = logger.With("session_id", d.state.ID)
	return d, nil
}

// Close releases the store and the log file, newest first.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			fmt.Fprintln(os.Stderr, "close:", err)
		}
	}
	d.closers = nil
}
