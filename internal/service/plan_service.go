package service

import (
	"alcyxob/running-app/internal/ai"
	"alcyxob/running-app/internal/domain"
	"alcyxob/running-app/internal/plan"
	"alcyxob/running-app/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInsufficientHistory = errors.New("not enough run history to generate a plan")
	ErrModelUpstream       = errors.New("training plan model call failed")
)

const (
	recentPlanLimit  = 5
	runSnapshotLimit = 10
)

// GenerateResult is the outcome of a successful plan generation.
// SaveErr carries a non-fatal persistence failure: the plan was generated
// and returned, but could not be saved.
type GenerateResult struct {
	Plan    *domain.WeeklyPlan
	PlanID  string
	SaveErr error
}

// --- Service Interface ---
type PlanService interface {
	GeneratePlan(ctx context.Context, userID primitive.ObjectID) (*GenerateResult, error)
	GetRecentPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanRecord, error)
}

// planService implements the PlanService interface.
type planService struct {
	runRepo   repository.RunRepository
	planRepo  repository.PlanRepository
	completer ai.Completer
	timeout   time.Duration
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	runRepo repository.RunRepository,
	planRepo repository.PlanRepository,
	completer ai.Completer,
	timeout time.Duration,
) PlanService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &planService{
		runRepo:   runRepo,
		planRepo:  planRepo,
		completer: completer,
		timeout:   timeout,
	}
}

// GeneratePlan runs the full pipeline for one user:
// history fetch -> aggregate -> prompt -> model call -> parse -> persist.
// The persist step is best-effort; its failure does not unwind a
// successfully generated plan.
func (s *planService) GeneratePlan(ctx context.Context, userID primitive.ObjectID) (*GenerateResult, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to generate a plan")
	}

	runs, err := s.runRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err // History read failure aborts the request.
	}

	summary, err := plan.Aggregate(runs)
	if err != nil {
		if errors.Is(err, plan.ErrNoHistory) {
			return nil, ErrInsufficientHistory
		}
		return nil, err
	}

	prompt := plan.BuildPrompt(summary)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	raw, err := s.completer.Complete(callCtx, plan.SystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUpstream, err)
	}

	weekly, err := plan.Parse(raw)
	if err != nil {
		return nil, err // *plan.ParseError carries the raw reply
	}

	result := &GenerateResult{
		Plan:   weekly,
		PlanID: uuid.NewString(),
	}

	snapshot := summary.SortedRuns
	if len(snapshot) > runSnapshotLimit {
		snapshot = snapshot[:runSnapshotLimit]
	}
	record := &domain.PlanRecord{
		PlanID:   result.PlanID,
		UserID:   userID,
		PlanData: *weekly,
		RunsData: snapshot,
	}
	if _, err := s.planRepo.Create(ctx, record); err != nil {
		// Best-effort write: report it, keep the generated plan.
		log.Printf("WARN: failed to persist generated plan for user %s: %v", userID.Hex(), err)
		result.SaveErr = err
	}

	return result, nil
}

// GetRecentPlans returns up to 5 of the user's persisted plans, newest
// first. An empty result is valid and signals the caller to generate.
func (s *planService) GetRecentPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanRecord, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.planRepo.GetRecentByUserID(ctx, userID, recentPlanLimit)
}
