package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the calendar-date format runs are recorded with.
const DateLayout = "2006-01-02"

// Run represents one completed running session.
// Pace is stored alongside distance and time but is always recomputed
// server-side on create/update, so the three stay consistent.
type Run struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Date      string             `bson:"date" json:"date"`         // "YYYY-MM-DD", lexical order == chronological order
	Distance  float64            `bson:"distance" json:"distance"` // kilometers, > 0
	Time      int                `bson:"time" json:"time"`         // total elapsed seconds, > 0
	Pace      int                `bson:"pace" json:"pace"`         // seconds per kilometer
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
