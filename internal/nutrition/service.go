package nutrition

import (
	"context"
	"time"

	"github.com/2beens/trainingdiary/internal/diary"
	"github.com/2beens/trainingdiary/internal/history"
	"github.com/2beens/trainingdiary/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=nutrition_test

type goalsReader interface {
	Get(ctx context.Context, userID string) (*diary.UserProfile, error)
}

type entriesRepo interface {
	Add(ctx context.Context, userID string, entry diary.NutritionLogEntry) (*diary.NutritionLogEntry, error)
	Delete(ctx context.Context, userID, entryID string) error
	List(ctx context.Context, userID string) ([]diary.NutritionLogEntry, error)
}

// TodaySummary is the nutrition screen: today's items and progress
// against the goals.
type TodaySummary struct {
	Items    []diary.NutritionLogEntry `json:"items"`
	Progress history.Progress          `json:"progress"`
}

type Service struct {
	profiles goalsReader
	repo     entriesRepo
	metrics  *metrics.Manager
	Now      func() time.Time
}

func NewService(profiles goalsReader, repo entriesRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		profiles: profiles,
		repo:     repo,
		metrics:  metricsManager,
		Now:      time.Now,
	}
}

// Add validates the input before anything is written.
func (s *Service) Add(ctx context.Context, userID string, in Input) (*diary.NutritionLogEntry, error) {
	entry, err := NewEntry(in, s.Now())
	if err != nil {
		return nil, err
	}

	added, err := s.repo.Add(ctx, userID, entry)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CounterNutritionEntries.Inc()
	}
	return added, nil
}

func (s *Service) Delete(ctx context.Context, userID, entryID string) error {
	return s.repo.Delete(ctx, userID, entryID)
}

func (s *Service) List(ctx context.Context, userID string) ([]diary.NutritionLogEntry, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) Today(ctx context.Context, userID string) (*TodaySummary, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return Summarize(entries, profile.NutritionGoals, diary.DateKey(s.Now())), nil
}

// Summarize builds the summary of date from a full log.
func Summarize(entries []diary.NutritionLogEntry, goals diary.NutritionGoals, date string) *TodaySummary {
	items := make([]diary.NutritionLogEntry, 0)
	for _, e := range entries {
		if e.Date == date {
			items = append(items, e)
		}
	}
	return &TodaySummary{
		Items:    items,
		Progress: history.DailyProgress(entries, date, goals),
	}
}
