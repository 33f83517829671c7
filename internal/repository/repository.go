package repository

import (
	"alcyxob/running-app/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// RunRepository defines the interface for interacting with run records.
// Every query and mutation is scoped by the owning user.
type RunRepository interface {
	Create(ctx context.Context, run *domain.Run) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Run, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Run, error)
	Update(ctx context.Context, run *domain.Run) error
	Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
}

// PlanRepository defines the interface for persisted generated plans.
// Plans are write-once; there is no update path.
type PlanRepository interface {
	Create(ctx context.Context, record *domain.PlanRecord) (primitive.ObjectID, error)
	GetRecentByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.PlanRecord, error)
}
