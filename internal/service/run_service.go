package service

import (
	"alcyxob/running-app/internal/domain"
	"alcyxob/running-app/internal/pace"
	"alcyxob/running-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrRunNotFound   = errors.New("run not found")
	ErrRunValidation = errors.New("run validation failed")
)

// RunStats summarises a user's whole run history.
type RunStats struct {
	TotalRuns       int     `json:"totalRuns"`
	TotalDistance   float64 `json:"totalDistance"`   // kilometers
	TotalTime       int     `json:"totalTime"`       // seconds
	AveragePace     int     `json:"averagePace"`     // seconds per km
	LongestDistance float64 `json:"longestDistance"` // kilometers
	FastestPace     int     `json:"fastestPace"`     // seconds per km, 0 when no runs
	WeeklyDistance  float64 `json:"weeklyDistance"`  // current calendar week, Sunday start
	MonthlyDistance float64 `json:"monthlyDistance"` // current calendar month
}

// --- Service Interface ---
type RunService interface {
	CreateRun(ctx context.Context, userID primitive.ObjectID, name, date string, distance float64, timeSeconds int) (*domain.Run, error)
	GetRuns(ctx context.Context, userID primitive.ObjectID) ([]domain.Run, error)
	GetRunByID(ctx context.Context, userID, runID primitive.ObjectID) (*domain.Run, error)
	UpdateRun(ctx context.Context, userID, runID primitive.ObjectID, name, date string, distance float64, timeSeconds int) (*domain.Run, error)
	DeleteRun(ctx context.Context, userID, runID primitive.ObjectID) error
	GetStats(ctx context.Context, userID primitive.ObjectID) (*RunStats, error)
}

// runService implements the RunService interface.
type runService struct {
	runRepo repository.RunRepository
	now     func() time.Time // injectable clock for weekly/monthly stats
}

// NewRunService creates a new instance of runService.
func NewRunService(runRepo repository.RunRepository) RunService {
	return &runService{
		runRepo: runRepo,
		now:     time.Now,
	}
}

func validateRun(name, date string, distance float64, timeSeconds int) error {
	if name == "" {
		return ErrRunValidation
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return ErrRunValidation
	}
	if distance <= 0 || timeSeconds <= 0 {
		return ErrRunValidation
	}
	return nil
}

// CreateRun records a new run for the user. Pace is recomputed from
// distance and time; the caller never supplies it.
func (s *runService) CreateRun(ctx context.Context, userID primitive.ObjectID, name, date string, distance float64, timeSeconds int) (*domain.Run, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a run")
	}
	if err := validateRun(name, date, distance, timeSeconds); err != nil {
		return nil, err
	}

	run := &domain.Run{
		UserID:   userID,
		Name:     name,
		Date:     date,
		Distance: distance,
		Time:     timeSeconds,
		Pace:     pace.CalculatePace(distance, timeSeconds),
	}

	runID, err := s.runRepo.Create(ctx, run)
	if err != nil {
		return nil, err
	}
	run.ID = runID
	// Fetch again to get the repository-set timestamps
	return s.runRepo.GetByID(ctx, runID)
}

// GetRuns retrieves all of a user's runs, newest first.
func (s *runService) GetRuns(ctx context.Context, userID primitive.ObjectID) ([]domain.Run, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.runRepo.GetByUserID(ctx, userID)
}

// GetRunByID retrieves a single run, enforcing ownership.
func (s *runService) GetRunByID(ctx context.Context, userID, runID primitive.ObjectID) (*domain.Run, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	// Another user's run looks the same as a missing one.
	if run.UserID != userID {
		return nil, ErrRunNotFound
	}
	return run, nil
}

// UpdateRun modifies an existing run in place, recomputing pace.
func (s *runService) UpdateRun(ctx context.Context, userID, runID primitive.ObjectID, name, date string, distance float64, timeSeconds int) (*domain.Run, error) {
	if userID == primitive.NilObjectID || runID == primitive.NilObjectID {
		return nil, errors.New("user ID and run ID are required")
	}
	if err := validateRun(name, date, distance, timeSeconds); err != nil {
		return nil, err
	}

	existing, err := s.GetRunByID(ctx, userID, runID)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Date = date
	existing.Distance = distance
	existing.Time = timeSeconds
	existing.Pace = pace.CalculatePace(distance, timeSeconds)

	err = s.runRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteRun removes a run. The repository filter enforces ownership at the
// DB level, so a user cannot delete another user's record.
func (s *runService) DeleteRun(ctx context.Context, userID, runID primitive.ObjectID) error {
	if userID == primitive.NilObjectID || runID == primitive.NilObjectID {
		return errors.New("user ID and run ID are required")
	}

	err := s.runRepo.Delete(ctx, runID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRunNotFound
		}
		return err
	}
	return nil
}

// GetStats computes aggregate statistics over the user's full history.
// Every field is 0 for a user with no runs.
func (s *runService) GetStats(ctx context.Context, userID primitive.ObjectID) (*RunStats, error) {
	runs, err := s.GetRuns(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &RunStats{
		TotalRuns:       len(runs),
		TotalDistance:   pace.TotalDistance(runs),
		TotalTime:       pace.TotalTime(runs),
		AveragePace:     pace.AveragePace(runs),
		LongestDistance: pace.LongestDistance(runs),
		FastestPace:     pace.FastestPace(runs),
		WeeklyDistance:  pace.WeeklyDistance(runs, now),
		MonthlyDistance: pace.MonthlyDistance(runs, now),
	}, nil
}
