// Package cli defines the scorectl command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"ProjectScoreService/internal/database"
	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"
	"ProjectScoreService/internal/services"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "SCORECTL"
	TextOutput = "text"
	JSONOutput = "json"
)

// Backend is what the commands need from the scoring stack.
type Backend interface {
	Leaderboard(ctx context.Context, query services.ScoreQuery, overrides scoring.ThresholdOverrides) (scoring.Leaderboard, error)
	HallOfFame(ctx context.Context, query services.ScoreQuery, overrides scoring.ThresholdOverrides) (scoring.HallOfFame, error)
	Recompute(ctx context.Context, groupID uint) (scoring.NormalizeResult, error)
	ImportWorkbook(ctx context.Context, r io.Reader) (*models.ImportResult, error)
	Close() error
}

type BackendFactory func(ctx context.Context, cfg *Config) (Backend, error)

// Config is the resolved configuration after flags, env and config file.
type Config struct {
	Output    string
	UseColors bool
	Database  database.Config
	Scoring   services.ScoringConfig
}

// NewRootCommand wires every subcommand against a fresh viper instance.
func NewRootCommand(factory BackendFactory) *cobra.Command {
	v := viper.New()
	cfg := &Config{}

	root := &cobra.Command{
		Use:           "scorectl",
		Short:         "Inspect project performance scores from the command line.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(v, cfg)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to config file")
	flags.String("output", TextOutput, "Output format: text or json")
	flags.String("color", "yes", "Enable colored labels in output (yes/no)")
	flags.String("db-host", "", "Database host (defaults to DB_HOST)")
	flags.String("db-port", "", "Database port (defaults to DB_PORT)")
	flags.String("db-user", "", "Database user (defaults to DB_USER)")
	flags.String("db-password", "", "Database password (defaults to DB_PASSWORD)")
	flags.String("db-name", "", "Database name (defaults to DB_NAME)")
	flags.String("excluded-codes", "", "Comma-separated project codes left out of scoring")
	flags.Int("window-days", services.DefaultWindowDays, "Default login/start window when no dates are given")
	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("binding root flags: %v", err))
	}

	root.AddCommand(
		newLeaderboardCommand(v, cfg, factory),
		newHallOfFameCommand(v, cfg, factory),
		newRecomputeCommand(v, cfg, factory),
		newImportCommand(v, cfg, factory),
	)
	return root
}

// Execute runs scorectl against the database backend.
func Execute(ctx context.Context) error {
	return NewRootCommand(NewDatabaseBackend).ExecuteContext(ctx)
}

func loadConfig(v *viper.Viper, cfg *Config) error {
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".scorectl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	output := strings.ToLower(strings.TrimSpace(v.GetString("output")))
	if output != TextOutput && output != JSONOutput {
		return fmt.Errorf("invalid output format %q: must be text or json", output)
	}
	cfg.Output = output

	colors, err := parseBool(v.GetString("color"))
	if err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Database = database.ConfigFromEnv()
	overrideString(&cfg.Database.Host, v.GetString("db-host"))
	overrideString(&cfg.Database.Port, v.GetString("db-port"))
	overrideString(&cfg.Database.User, v.GetString("db-user"))
	overrideString(&cfg.Database.Password, v.GetString("db-password"))
	overrideString(&cfg.Database.Name, v.GetString("db-name"))

	cfg.Scoring = services.ScoringConfig{
		ExcludedCodes:     splitList(v.GetString("excluded-codes")),
		DefaultWindowDays: v.GetInt("window-days"),
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", s)
}

func overrideString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// withBackend opens a backend for the duration of run.
func withBackend(cmd *cobra.Command, cfg *Config, factory BackendFactory, run func(Backend) error) error {
	backend, err := factory(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open backend: %w", err)
	}
	defer func() { _ = backend.Close() }()
	return run(backend)
}
