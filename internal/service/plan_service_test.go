package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"alcyxob/running-app/internal/domain"
	"alcyxob/running-app/internal/plan"
	"alcyxob/running-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Fakes ---

type fakeRunRepo struct {
	byID    map[primitive.ObjectID]domain.Run
	listErr error
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{byID: make(map[primitive.ObjectID]domain.Run)}
}

func (f *fakeRunRepo) add(run domain.Run) domain.Run {
	if run.ID == primitive.NilObjectID {
		run.ID = primitive.NewObjectID()
	}
	f.byID[run.ID] = run
	return run
}

func (f *fakeRunRepo) Create(_ context.Context, run *domain.Run) (primitive.ObjectID, error) {
	run.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	run.CreatedAt = now
	run.UpdatedAt = now
	f.byID[run.ID] = *run
	return run.ID, nil
}

func (f *fakeRunRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Run, error) {
	run, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &run, nil
}

func (f *fakeRunRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Run, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var runs []domain.Run
	for _, run := range f.byID {
		if run.UserID == userID {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

func (f *fakeRunRepo) Update(_ context.Context, run *domain.Run) error {
	existing, ok := f.byID[run.ID]
	if !ok || existing.UserID != run.UserID {
		return repository.ErrNotFound
	}
	f.byID[run.ID] = *run
	return nil
}

func (f *fakeRunRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	existing, ok := f.byID[id]
	if !ok || existing.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakePlanRepo struct {
	records   []domain.PlanRecord
	createErr error
}

func (f *fakePlanRepo) Create(_ context.Context, record *domain.PlanRecord) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now().UTC()
	f.records = append(f.records, *record)
	return record.ID, nil
}

func (f *fakePlanRepo) GetRecentByUserID(_ context.Context, userID primitive.ObjectID, limit int64) ([]domain.PlanRecord, error) {
	var out []domain.PlanRecord
	for i := len(f.records) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if f.records[i].UserID == userID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

const modelReply = `Here is your plan: {
  "plan": [
    {"day": "Monday", "type": "Easy run", "distance": 5, "duration": 30, "pace": "6:00", "description": "Recovery"},
    {"day": "Tuesday", "type": "Rest", "distance": 0, "duration": 0, "pace": "", "description": "Rest"},
    {"day": "Wednesday", "type": "Intervals", "distance": 6, "duration": 35, "pace": "4:45", "description": "Speed"},
    {"day": "Thursday", "type": "Easy run", "distance": 5, "duration": 30, "pace": "6:00", "description": "Base"},
    {"day": "Friday", "type": "Rest", "distance": 0, "duration": 0, "pace": "", "description": "Rest"},
    {"day": "Saturday", "type": "Tempo", "distance": 8, "duration": 40, "pace": "5:00", "description": "Tempo"},
    {"day": "Sunday", "type": "Long run", "distance": 14, "duration": 85, "pace": "6:05", "description": "Endurance"}
  ],
  "summary": "A steady build week.",
  "tips": ["Hydrate", "Sleep"]
} Good luck out there!`

func seedRuns(repo *fakeRunRepo, userID primitive.ObjectID, n int) {
	for i := 0; i < n; i++ {
		repo.add(domain.Run{
			UserID:   userID,
			Name:     fmt.Sprintf("run %d", i+1),
			Date:     fmt.Sprintf("2025-11-%02d", i+1),
			Distance: 5,
			Time:     1500,
			Pace:     300,
		})
	}
}

// --- Tests ---

func TestGeneratePlanNoHistory(t *testing.T) {
	runRepo := newFakeRunRepo()
	planRepo := &fakePlanRepo{}
	completer := &fakeCompleter{reply: modelReply}
	svc := NewPlanService(runRepo, planRepo, completer, time.Second)

	_, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrInsufficientHistory)
	assert.Zero(t, completer.calls, "no model call for a user with zero runs")
	assert.Empty(t, planRepo.records)
}

func TestGeneratePlanSuccess(t *testing.T) {
	userID := primitive.NewObjectID()
	runRepo := newFakeRunRepo()
	seedRuns(runRepo, userID, 3)
	planRepo := &fakePlanRepo{}
	completer := &fakeCompleter{reply: modelReply}
	svc := NewPlanService(runRepo, planRepo, completer, time.Second)

	result, err := svc.GeneratePlan(context.Background(), userID)
	require.NoError(t, err)

	require.NotNil(t, result.Plan)
	assert.Len(t, result.Plan.Plan, 7)
	assert.Equal(t, "A steady build week.", result.Plan.Summary)
	assert.NotEmpty(t, result.PlanID)
	assert.NoError(t, result.SaveErr)

	require.Len(t, planRepo.records, 1)
	record := planRepo.records[0]
	assert.Equal(t, result.PlanID, record.PlanID)
	assert.Equal(t, userID, record.UserID)
	assert.Len(t, record.RunsData, 3)
	assert.Equal(t, "2025-11-03", record.RunsData[0].Date, "snapshot is newest first")
}

func TestGeneratePlanSnapshotCappedAtTen(t *testing.T) {
	userID := primitive.NewObjectID()
	runRepo := newFakeRunRepo()
	seedRuns(runRepo, userID, 12)
	planRepo := &fakePlanRepo{}
	svc := NewPlanService(runRepo, planRepo, &fakeCompleter{reply: modelReply}, time.Second)

	_, err := svc.GeneratePlan(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, planRepo.records, 1)
	assert.Len(t, planRepo.records[0].RunsData, 10)
}

func TestGeneratePlanPersistenceFailureIsNonFatal(t *testing.T) {
	userID := primitive.NewObjectID()
	runRepo := newFakeRunRepo()
	seedRuns(runRepo, userID, 2)
	planRepo := &fakePlanRepo{createErr: errors.New("write refused")}
	svc := NewPlanService(runRepo, planRepo, &fakeCompleter{reply: modelReply}, time.Second)

	result, err := svc.GeneratePlan(context.Background(), userID)

	require.NoError(t, err, "persistence failure must not fail the request")
	require.NotNil(t, result.Plan)
	assert.Error(t, result.SaveErr)
}

func TestGeneratePlanModelError(t *testing.T) {
	userID := primitive.NewObjectID()
	runRepo := newFakeRunRepo()
	seedRuns(runRepo, userID, 1)
	svc := NewPlanService(runRepo, &fakePlanRepo{}, &fakeCompleter{err: errors.New("upstream timeout")}, time.Second)

	_, err := svc.GeneratePlan(context.Background(), userID)
	assert.ErrorIs(t, err, ErrModelUpstream)
}

func TestGeneratePlanParseErrorCarriesRawReply(t *testing.T) {
	userID := primitive.NewObjectID()
	runRepo := newFakeRunRepo()
	seedRuns(runRepo, userID, 1)
	planRepo := &fakePlanRepo{}
	svc := NewPlanService(runRepo, planRepo, &fakeCompleter{reply: "no plan today, sorry"}, time.Second)

	_, err := svc.GeneratePlan(context.Background(), userID)

	var parseErr *plan.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "no plan today, sorry", parseErr.Raw)
	assert.Empty(t, planRepo.records, "nothing persisted on parse failure")
}

func TestGeneratePlanHistoryReadFailureAborts(t *testing.T) {
	runRepo := newFakeRunRepo()
	runRepo.listErr = errors.New("db unavailable")
	completer := &fakeCompleter{reply: modelReply}
	svc := NewPlanService(runRepo, &fakePlanRepo{}, completer, time.Second)

	_, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID())

	assert.Error(t, err)
	assert.Zero(t, completer.calls)
}

func TestGetRecentPlans(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := &fakePlanRepo{}
	for i := 0; i < 7; i++ {
		_, err := planRepo.Create(context.Background(), &domain.PlanRecord{
			PlanID: fmt.Sprintf("plan-%d", i),
			UserID: userID,
		})
		require.NoError(t, err)
	}
	svc := NewPlanService(newFakeRunRepo(), planRepo, &fakeCompleter{}, time.Second)

	plans, err := svc.GetRecentPlans(context.Background(), userID)
	require.NoError(t, err)

	assert.Len(t, plans, 5)
	assert.Equal(t, "plan-6", plans[0].PlanID, "newest first")
}

func TestGetRecentPlansEmptyIsValid(t *testing.T) {
	svc := NewPlanService(newFakeRunRepo(), &fakePlanRepo{}, &fakeCompleter{}, time.Second)

	plans, err := svc.GetRecentPlans(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, plans)
}
