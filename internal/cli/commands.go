package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"
	"ProjectScoreService/internal/services"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const dateLayout = "2006-01-02"

// bindOnRun binds the command's own flags when it is the one executing, so
// commands sharing flag names do not clobber each other in viper.
func bindOnRun(v *viper.Viper) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return v.BindPFlags(cmd.Flags())
	}
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().String("sbu", "", "Comma-separated SBUs (default Central,North,South,West)")
	cmd.Flags().String("start", "", "Window start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Window end date (YYYY-MM-DD)")
	cmd.Flags().StringSlice("min", nil, "Minimum threshold override as field=value, repeatable")
}

func newLeaderboardCommand(v *viper.Viper, cfg *Config, factory BackendFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leaderboard",
		Short:   "Rank the holders of one role by total score",
		Args:    cobra.NoArgs,
		PreRunE: bindOnRun(v),
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, overrides, err := readQuery(v)
			if err != nil {
				return err
			}
			query.Role = strings.TrimSpace(v.GetString("role"))
			if query.Role == "" {
				return errors.New("--role is required")
			}

			return withBackend(cmd, cfg, factory, func(b Backend) error {
				board, err := b.Leaderboard(cmd.Context(), query, overrides)
				if err != nil {
					return err
				}
				return writeLeaderboard(cmd.OutOrStdout(), board, cfg)
			})
		},
	}
	cmd.Flags().String("role", "", "Role key, e.g. \"Sales Lead\" or \"Operations - SS\"")
	addQueryFlags(cmd)
	return cmd
}

func newHallOfFameCommand(v *viper.Viper, cfg *Config, factory BackendFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "halloffame",
		Short:   "Show the top two performers of every role",
		Args:    cobra.NoArgs,
		PreRunE: bindOnRun(v),
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, overrides, err := readQuery(v)
			if err != nil {
				return err
			}

			return withBackend(cmd, cfg, factory, func(b Backend) error {
				fame, err := b.HallOfFame(cmd.Context(), query, overrides)
				if err != nil {
					return err
				}
				return writeHallOfFame(cmd.OutOrStdout(), fame, cfg)
			})
		},
	}
	addQueryFlags(cmd)
	return cmd
}

func newRecomputeCommand(v *viper.Viper, cfg *Config, factory BackendFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recompute",
		Short:   "Redistribute auto credits of one user group",
		Args:    cobra.NoArgs,
		PreRunE: bindOnRun(v),
		RunE: func(cmd *cobra.Command, _ []string) error {
			groupID := v.GetUint("group")
			if groupID == 0 {
				return errors.New("--group is required")
			}

			return withBackend(cmd, cfg, factory, func(b Backend) error {
				result, err := b.Recompute(cmd.Context(), groupID)
				if err != nil {
					return err
				}
				return writeNormalizeResult(cmd.OutOrStdout(), result, cfg)
			})
		},
	}
	cmd.Flags().Uint("group", 0, "User group id")
	return cmd
}

func newImportCommand(v *viper.Viper, cfg *Config, factory BackendFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import",
		Short:   "Replace all projects with the contents of an xlsx export",
		Args:    cobra.NoArgs,
		PreRunE: bindOnRun(v),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := v.GetString("file")
			if path == "" {
				return errors.New("--file is required")
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open workbook: %w", err)
			}
			defer func() { _ = file.Close() }()

			return withBackend(cmd, cfg, factory, func(b Backend) error {
				result, err := b.ImportWorkbook(cmd.Context(), file)
				if err != nil {
					return err
				}
				return writeImportResult(cmd.OutOrStdout(), result, cfg)
			})
		},
	}
	cmd.Flags().String("file", "", "Path to the Sales/Design/Operations workbook")
	return cmd
}

func readQuery(v *viper.Viper) (services.ScoreQuery, scoring.ThresholdOverrides, error) {
	query := services.ScoreQuery{SBUs: splitList(v.GetString("sbu"))}

	var err error
	if query.Start, err = parseDate(v.GetString("start")); err != nil {
		return query, scoring.ThresholdOverrides{}, fmt.Errorf("invalid --start: %w", err)
	}
	if query.End, err = parseDate(v.GetString("end")); err != nil {
		return query, scoring.ThresholdOverrides{}, fmt.Errorf("invalid --end: %w", err)
	}

	overrides, err := parseOverrides(v.GetStringSlice("min"))
	if err != nil {
		return query, scoring.ThresholdOverrides{}, err
	}
	return query, overrides, nil
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseOverrides(pairs []string) (scoring.ThresholdOverrides, error) {
	values := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		field, raw, ok := strings.Cut(pair, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return scoring.ThresholdOverrides{}, fmt.Errorf("invalid --min %q: want field=value", pair)
		}
		if !models.IsMetricField(field) {
			return scoring.ThresholdOverrides{}, fmt.Errorf("%w: %s", models.ErrUnknownMetricField, field)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return scoring.ThresholdOverrides{}, fmt.Errorf("invalid --min %q: %w", pair, err)
		}
		values[field] = value
	}
	return scoring.NewThresholdOverrides(values), nil
}
