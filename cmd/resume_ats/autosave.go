package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-ats/internal/autosave"
	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/spf13/cobra"
)

var autosaveCommand = &cobra.Command{
	Use:   "autosave",
	Short: "Save or restore the in-progress resume",
	Long: `Stores the resume being edited, with its selected template, under a fixed key and restores it later.
A saved resume is only restored within 24 hours of being saved.`,
}

var autosaveSaveCommand = &cobra.Command{
	Use:   "save",
	Short: "Save a resume JSON file as the in-progress resume",
	RunE:  runAutosaveSaveCmd,
}

var autosaveRestoreCommand = &cobra.Command{
	Use:   "restore",
	Short: "Restore the in-progress resume if one was saved in the last 24 hours",
	RunE:  runAutosaveRestoreCmd,
}

var autosaveClearCommand = &cobra.Command{
	Use:   "clear",
	Short: "Delete the in-progress resume",
	RunE:  runAutosaveClearCmd,
}

var (
	autosaveConfigPath  string
	autosaveBackend     string
	autosaveSQLitePath  string
	autosaveRedisURL    string
	autosaveDatabaseURL string
	autosaveKey         string
	autosaveResume      string
	autosaveTemplate    string
	autosaveOut         string
)

func init() {
	pf := autosaveCommand.PersistentFlags()
	pf.StringVar(&autosaveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	pf.StringVar(&autosaveBackend, "backend", "", "Storage backend: sqlite (default), redis, postgres or memory")
	pf.StringVar(&autosaveSQLitePath, "sqlite-path", "", "SQLite database file (defaults to ~/.resume_ats/autosave.db)")
	pf.StringVar(&autosaveRedisURL, "redis-url", "", "Redis URL (defaults to REDIS_URL env var)")
	pf.StringVar(&autosaveDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	pf.StringVar(&autosaveKey, "key", autosave.StorageKey, "Storage key")

	autosaveSaveCommand.Flags().StringVarP(&autosaveResume, "resume", "r", "", "Path to resume JSON file")
	autosaveSaveCommand.Flags().StringVarP(&autosaveTemplate, "template", "t", "", "Selected template id")
	_ = autosaveSaveCommand.MarkFlagRequired("resume")

	autosaveRestoreCommand.Flags().StringVarP(&autosaveOut, "out", "o", "", "Path to write the restored resume JSON to (defaults to stdout)")

	autosaveCommand.AddCommand(autosaveSaveCommand, autosaveRestoreCommand, autosaveClearCommand)
	rootCmd.AddCommand(autosaveCommand)
}

// openAutosaveManager resolves the backend settings from config, flags and
// environment and opens a manager over it.
func openAutosaveManager(ctx context.Context, cmd *cobra.Command) (*autosave.Manager, func() error, error) {
	var cfg config.Config
	if autosaveConfigPath != "" {
		loaded, err := config.LoadConfig(autosaveConfigPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = autosaveBackend
	}
	if flags.Changed("sqlite-path") {
		cfg.SQLitePath = autosaveSQLitePath
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = autosaveRedisURL
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = autosaveDatabaseURL
	}
	cfg = cfg.MergeWithDefaults(config.Config{
		Backend:     config.BackendSQLite,
		RedisURL:    os.Getenv("REDIS_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	})
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	store, closeStore, err := autosave.OpenStore(ctx, cfg.Backend, cfg.BackendOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	return autosave.NewManager(store, autosave.WithKey(autosaveKey)), closeStore, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runAutosaveSaveCmd(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	doc, err := schemas.ReadResume(autosaveResume)
	if err != nil {
		return err
	}

	var templateID types.TemplateID
	if autosaveTemplate != "" {
		if templateID, err = types.ParseTemplateID(autosaveTemplate); err != nil {
			return err
		}
	}

	manager, closeStore, err := openAutosaveManager(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	if err := manager.Save(ctx, doc, templateID); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s under key %s\n", autosaveResume, manager.Key())
	return nil
}

func runAutosaveRestoreCmd(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	manager, closeStore, err := openAutosaveManager(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	snapshot, ok := manager.Restore(ctx)
	if !ok {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No saved resume to restore")
		return nil
	}

	data, err := snapshot.Encode()
	if err != nil {
		return err
	}

	if autosaveOut == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(autosaveOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", autosaveOut, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored resume saved %s written to %s\n",
		snapshot.SavedAt().Format("2006-01-02 15:04"), autosaveOut)
	return nil
}

func runAutosaveClearCmd(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	manager, closeStore, err := openAutosaveManager(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	if err := manager.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cleared saved resume")
	return nil
}
