// Package cli wires configuration, storage and the task store behind a cobra
// command tree. The bare command starts the terminal UI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todo/internal/config"
	"github.com/sandeepkv93/todo/internal/storage"
	"github.com/sandeepkv93/todo/internal/store"
	"github.com/sandeepkv93/todo/internal/update"
)

type flagValues struct {
	dbPath   string
	storage  string
	key      string
	logFile  string
	logLevel string
	envFile  string
}

// app is what every subcommand runs against once PersistentPreRunE is done.
type app struct {
	cfg     config.RuntimeConfig
	logger  *log.Logger
	kv      storage.KeyValue
	store   *store.Store
	closers []io.Closer
}

// Close releases the database and log file. It is safe to call twice.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Run executes the command line in args and releases every resource it
// opened, whether or not the command succeeded.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	root, a := newRootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.Close())
}

func newRootCommand() (*cobra.Command, *app) {
	flags := &flagValues{}
	a := &app{}

	root := &cobra.Command{
		Use:           "todo",
		Short:         "A prioritized task list",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context(), cfg); err != nil {
				return errors.Join(err, a.Close())
			}
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			program := tea.NewProgram(
				update.NewModel(cmd.Context(), a.store, a.logger),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err := program.Run()
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.dbPath, "db", "", "sqlite database file (env TODO_DB_PATH)")
	pf.StringVar(&flags.storage, "storage", "", "storage backend: sqlite or memory (env TODO_STORAGE)")
	pf.StringVar(&flags.key, "key", "", "key the task list is stored under (env TODO_STORAGE_KEY)")
	pf.StringVar(&flags.logFile, "log-file", "", "append logs to this file (env TODO_LOG_FILE)")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (env TODO_LOG_LEVEL)")
	pf.StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")

	root.AddCommand(
		newAddCommand(a),
		newDoneCommand(a),
		newEditCommand(a),
		newRemoveCommand(a),
		newListCommand(a),
		newResetCommand(a),
	)
	return root, a
}

// loadConfig layers defaults, the dotenv file, the environment and flags,
// later sources winning.
func loadConfig(cmd *cobra.Command, flags *flagValues) (config.RuntimeConfig, error) {
	if err := config.LoadDotEnv(flags.envFile); err != nil {
		return config.RuntimeConfig{}, err
	}
	cfg := config.RuntimeConfigFromEnv(config.DefaultRuntimeConfig())
	fs := cmd.Flags()
	if fs.Changed("db") {
		cfg.DBPath = flags.dbPath
	}
	if fs.Changed("storage") {
		cfg.Storage = flags.storage
	}
	if fs.Changed("key") {
		cfg.StorageKey = flags.key
	}
	if fs.Changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.RuntimeConfig{}, err
	}
	return cfg, nil
}

func (a *app) open(ctx context.Context, cfg config.RuntimeConfig) error {
	a.cfg = cfg
	logger, err := a.openLogger(cfg)
	if err != nil {
		return err
	}
	a.logger = logger

	switch cfg.Storage {
	case config.StorageMemory:
		a.kv = storage.NewMemoryKV()
	default:
		kv, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return err
		}
		a.kv = kv
		a.closers = append(a.closers, kv)
	}

	st, err := store.New(ctx, a.kv, store.WithKey(cfg.StorageKey), store.WithLogger(logger))
	if err != nil {
		return err
	}
	a.store = st
	logger.Debug("store ready", "storage", cfg.Storage, "key", cfg.StorageKey, "tasks", st.Len())
	return nil
}

func (a *app) openLogger(cfg config.RuntimeConfig) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	var w io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		w = f
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "todo",
		ReportTimestamp: true,
	}), nil
}
