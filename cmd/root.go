// Package cmd implements the allowance CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/allowance/internal/budget"
	"github.com/theirongolddev/allowance/internal/config"
	"github.com/theirongolddev/allowance/internal/logger"
	"github.com/theirongolddev/allowance/internal/prompt"
	"github.com/theirongolddev/allowance/internal/service"
	"github.com/theirongolddev/allowance/internal/store"
)

var (
	flagDataDir string
	flagNoCache bool
	flagYes     bool
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "allowance",
	Short: "Two-person pocket-money budget tracker",
	Long: "Track a monthly allowance for two people: a total budget, per-category budgets\n" +
		"and the expenses recorded against them. Budget periods run from the 16th to the 15th.",
	RunE:          runSummary,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	err := rootCmd.Execute()
	logger.Close()
	if err == nil || errors.Is(err, prompt.ErrCanceled) {
		return
	}
	// Budget errors were already shown by the notifier.
	if budget.KindOf(err) == "" {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
	}
	os.Exit(1)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default "+store.DataDir()+")")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Do not read or write saved data")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Answer yes to every confirmation")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress success messages")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log debug output to stderr")
}

// session is the wiring shared by every command: config, logger, the
// snapshot cache and a loaded service.
type session struct {
	cfg     config.Config
	dataDir string
	svc     *service.Service
	cache   *store.Store
}

func (s *session) Close() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
}

// openSession loads config, initializes logging, opens the cache and
// restores both users. logFile redirects the logger away from stderr.
// A cache that cannot be opened is logged and skipped.
func openSession(notify prompt.Notifier, logFile string) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if flagVerbose {
		level = "debug"
	}
	if err := logger.Init(logger.Options{Level: level, File: logFile}); err != nil {
		return nil, err
	}
	log := logger.Get()

	s := &session{cfg: cfg, dataDir: resolveDataDir(cfg)}

	opts := service.Options{
		Notifier: notify,
		Logger:   log,
		Label:    cfg.UserLabel,
	}
	if flagYes || cfg.General.AssumeYes {
		opts.Confirmer = prompt.AssumeYes{}
		opts.Prompter = prompt.AssumeYes{}
	} else {
		h := prompt.Huh{Accessible: os.Getenv("ACCESSIBLE") != ""}
		opts.Confirmer = h
		opts.Prompter = h
	}

	if !flagNoCache {
		path := store.Path(s.dataDir)
		st, err := store.Open(path)
		if err != nil {
			log.Warnw("snapshot cache unavailable", "path", path, "error", err)
		} else {
			s.cache = st
			opts.Cache = st
		}
	}

	s.svc = service.New(budget.NewBook(), opts)
	s.svc.Load(cfg.StartUser())
	log.Debugw("session opened", "data_dir", s.dataDir, "user", s.svc.Book().ActiveUser(), "cache", s.cache != nil)
	return s, nil
}

func resolveDataDir(cfg config.Config) string {
	switch {
	case flagDataDir != "":
		return flagDataDir
	case cfg.General.DataDir != "":
		return cfg.General.DataDir
	}
	return store.DataDir()
}

// openConsoleSession opens a session that reports to the terminal.
func openConsoleSession() (*session, error) {
	return openSession(prompt.NewConsole(flagQuiet), "")
}
