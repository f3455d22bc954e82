package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/repository"
	"ProjectScoreService/internal/scoring"

	"gorm.io/gorm"
)

const (
	DefaultWindowDays = 30
	allRoles          = "all roles"
)

var DefaultSBUs = []string{"Central", "North", "South", "West"}

type ScoringConfig struct {
	ExcludedCodes     []string
	DefaultSBUs       []string
	DefaultWindowDays int
}

type ScoreQuery struct {
	Role       string
	Department string
	SBUs       []string
	Start      *time.Time
	End        *time.Time
}

type DashboardSummary struct {
	Department string               `json:"department"`
	Role       string               `json:"role,omitempty"`
	Start      string               `json:"start"`
	End        string               `json:"end"`
	Pre        scoring.StageSummary `json:"pre"`
	Post       scoring.StageSummary `json:"post"`
}

type snapshot struct {
	registry *scoring.Registry
	roles    *scoring.RoleTable
}

type ScoringService struct {
	projectStore ProjectStore
	metricStore  MetricStore
	weightStore  WeightStore
	groupStore   GroupStore
	config       ScoringConfig
	logger       *slog.Logger
	now          func() time.Time
}

func NewScoringService(
	projectStore ProjectStore,
	metricStore MetricStore,
	weightStore WeightStore,
	groupStore GroupStore,
	config ScoringConfig,
	logger *slog.Logger,
) *ScoringService {
	if config.DefaultWindowDays <= 0 {
		config.DefaultWindowDays = DefaultWindowDays
	}
	if len(config.DefaultSBUs) == 0 {
		config.DefaultSBUs = DefaultSBUs
	}
	return &ScoringService{
		projectStore: projectStore,
		metricStore:  metricStore,
		weightStore:  weightStore,
		groupStore:   groupStore,
		config:       config,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ScoringService) Scorecard(ctx context.Context, code, role string, overrides scoring.ThresholdOverrides) (*scoring.Scorecard, error) {
	project, err := s.projectStore.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	_, groupID, ok := snap.roles.Lookup(role)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownRole, role)
	}

	card := scoring.BuildScorecard(project, groupID, snap.registry.ValidMetrics(groupID, overrides))
	return &card, nil
}

// Leaderboard ranks the holders of one role. Roles without a bound group
// produce an empty board.
func (s *ScoringService) Leaderboard(ctx context.Context, query ScoreQuery, overrides scoring.ThresholdOverrides) (scoring.Leaderboard, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return scoring.Leaderboard{}, err
	}

	role, groupID, ok := snap.roles.Lookup(query.Role)
	if !ok {
		s.logger.Info("Leaderboard requested for unbound role", "role", query.Role)
		return scoring.Leaderboard{Role: query.Role, Link: role.Link, Rows: []scoring.LeaderboardRow{}}, nil
	}

	projects, err := s.projectStore.FindByFilter(ctx, s.filter(query, role.Field))
	if err != nil {
		return scoring.Leaderboard{}, fmt.Errorf("failed to load projects: %w", err)
	}

	return scoring.BuildLeaderboard(projects, role, snap.registry.ValidMetrics(groupID, overrides)), nil
}

func (s *ScoringService) HallOfFame(ctx context.Context, query ScoreQuery, overrides scoring.ThresholdOverrides) (scoring.HallOfFame, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectStore.FindByFilter(ctx, s.filter(query, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	return scoring.BuildHallOfFame(projects, snap.roles, snap.registry, overrides), nil
}

func (s *ScoringService) DashboardSummary(ctx context.Context, query ScoreQuery, overrides scoring.ThresholdOverrides) (*DashboardSummary, error) {
	dept, err := s.groupStore.FindDepartmentByName(ctx, query.Department)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", models.ErrDepartmentNotFound, query.Department)
	}
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var groupID uint
	if query.Role != "" && strings.ToLower(strings.TrimSpace(query.Role)) != allRoles {
		_, id, ok := snap.roles.Lookup(query.Role)
		if !ok {
			return nil, fmt.Errorf("%w: %s", models.ErrUnknownRole, query.Role)
		}
		groupID = id
	}

	filter := s.filter(query, "")
	projects, err := s.projectStore.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	return &DashboardSummary{
		Department: dept.Name,
		Role:       query.Role,
		Start:      filter.Start.Format(time.DateOnly),
		End:        filter.End.Format(time.DateOnly),
		Pre:        scoring.BuildStageSummary(projects, models.StagePre, snap.registry, dept.ID, groupID, overrides),
		Post:       scoring.BuildStageSummary(projects, models.StagePost, snap.registry, dept.ID, groupID, overrides),
	}, nil
}

func (s *ScoringService) Roles(ctx context.Context) ([]scoring.Role, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.roles.Roles(), nil
}

func (s *ScoringService) snapshot(ctx context.Context) (*snapshot, error) {
	metrics, err := s.metricStore.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load metrics: %w", err)
	}
	weights, err := s.weightStore.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load weights: %w", err)
	}
	visibility, err := s.metricStore.FindVisibility(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load metric visibility: %w", err)
	}
	groups, err := s.groupStore.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}

	return &snapshot{
		registry: scoring.NewRegistry(metrics, weights, visibility),
		roles:    scoring.NewRoleTable(scoring.DefaultRoles(), groups),
	}, nil
}

// DefaultWindow spans the last days calendar days ending today in UTC. Both
// bounds are midnights so they compare cleanly against date columns.
func DefaultWindow(now time.Time, days int) (time.Time, time.Time) {
	y, m, d := now.UTC().Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, 0, -days), end
}

func (s *ScoringService) filter(query ScoreQuery, roleField string) repository.ProjectFilter {
	start, end := DefaultWindow(s.now(), s.config.DefaultWindowDays)
	if query.End != nil {
		end = *query.End
		start = end.AddDate(0, 0, -s.config.DefaultWindowDays)
	}
	if query.Start != nil {
		start = *query.Start
	}

	sbus := query.SBUs
	if len(sbus) == 0 {
		sbus = s.config.DefaultSBUs
	}

	return repository.ProjectFilter{
		SBUs:          sbus,
		Start:         &start,
		End:           &end,
		RoleField:     roleField,
		ExcludedCodes: s.config.ExcludedCodes,
	}
}
