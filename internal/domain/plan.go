package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeeklyPlanDay is one day's prescribed training within a weekly plan.
type WeeklyPlanDay struct {
	Day         string  `bson:"day" json:"day"`
	Type        string  `bson:"type" json:"type"`         // free text, e.g. "Easy run", "Intervals", "Rest"
	Distance    float64 `bson:"distance" json:"distance"` // kilometers
	Duration    int     `bson:"duration" json:"duration"` // minutes
	Pace        string  `bson:"pace" json:"pace"`         // "MM:SS" per kilometer
	Description string  `bson:"description" json:"description"`
}

// WeeklyPlan is a generated 7-day training prescription. It is produced
// atomically per generation request and never mutated afterwards, only
// superseded by a newer plan.
type WeeklyPlan struct {
	Plan    []WeeklyPlanDay `bson:"plan" json:"plan"`
	Summary string          `bson:"summary" json:"summary"`
	Tips    []string        `bson:"tips" json:"tips"`
}

// PlanRecord is a persisted generated plan, saved best-effort together
// with a snapshot of the runs it was derived from.
type PlanRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID    string             `bson:"planId" json:"planId"` // public identifier, assigned at creation
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	PlanData  WeeklyPlan         `bson:"planData" json:"planData"`
	RunsData  []Run              `bson:"runsData,omitempty" json:"runsData,omitempty"` // up to 10 most recent runs at generation time
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
