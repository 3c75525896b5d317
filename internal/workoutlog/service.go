package workoutlog

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/trainingdiary/internal/diary"
	"github.com/2beens/trainingdiary/internal/telemetry/metrics"
	"github.com/2beens/trainingdiary/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workoutlog_test

type profileReader interface {
	Get(ctx context.Context, userID string) (*diary.UserProfile, error)
}

type entriesRepo interface {
	Add(ctx context.Context, userID string, entries []diary.WorkoutLogEntry) ([]diary.WorkoutLogEntry, error)
	List(ctx context.Context, userID string) ([]diary.WorkoutLogEntry, error)
}

type Service struct {
	profiles profileReader
	repo     entriesRepo
	metrics  *metrics.Manager
	Now      func() time.Time
}

func NewService(profiles profileReader, repo entriesRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		profiles: profiles,
		repo:     repo,
		metrics:  metricsManager,
		Now:      time.Now,
	}
}

// Save validates the submission against the user's current plan, then
// writes one entry per filled set. Nothing is written when validation fails.
func (s *Service) Save(ctx context.Context, userID string, sub Submission) (_ []diary.WorkoutLogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workoutlog.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := BuildEntries(profile.WorkoutPlan, sub, s.Now())
	if err != nil {
		return nil, err
	}

	added, err := s.repo.Add(ctx, userID, entries)
	if s.metrics != nil {
		s.metrics.CounterWorkoutSets.Add(float64(len(added)))
	}
	if err != nil {
		log.Errorf("workout save for %s stopped after %d of %d sets: %s", userID, len(added), len(entries), err)
		return nil, err
	}

	return added, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]diary.WorkoutLogEntry, error) {
	return s.repo.List(ctx, userID)
}
