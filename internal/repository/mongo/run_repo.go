package mongo

import (
	"alcyxob/running-app/internal/domain"
	"alcyxob/running-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const runCollectionName = "runs"

// mongoRunRepository implements repository.RunRepository
type mongoRunRepository struct {
	collection *mongo.Collection
}

// NewMongoRunRepository creates a new Run repository.
func NewMongoRunRepository(db *mongo.Database) repository.RunRepository {
	return &mongoRunRepository{
		collection: db.Collection(runCollectionName),
	}
}

// Create inserts a new run record.
func (r *mongoRunRepository) Create(ctx context.Context, run *domain.Run) (primitive.ObjectID, error) {
	if run.UserID == primitive.NilObjectID || run.Distance <= 0 || run.Time <= 0 {
		return primitive.NilObjectID, errors.New("run requires userId, positive distance, and positive time")
	}
	run.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	run.CreatedAt = now
	run.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, run)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted run ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single run by its ID.
func (r *mongoRunRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Run, error) {
	var run domain.Run
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&run)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &run, nil
}

// GetByUserID retrieves all runs for a user, newest first.
// Creation time breaks ties between runs on the same date.
func (r *mongoRunRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Run, error) {
	var runs []domain.Run
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Return empty slice if no runs found
	return runs, nil
}

// Update modifies an existing run. The filter includes the owner so a user
// cannot touch another user's record; UserID itself is never changed.
func (r *mongoRunRepository) Update(ctx context.Context, run *domain.Run) error {
	if run.ID == primitive.NilObjectID || run.UserID == primitive.NilObjectID {
		return errors.New("run ID and user ID are required for update")
	}

	filter := bson.M{
		"_id":    run.ID,
		"userId": run.UserID,
	}
	update := bson.M{
		"$set": bson.M{
			"name":      run.Name,
			"date":      run.Date,
			"distance":  run.Distance,
			"time":      run.Time,
			"pace":      run.Pace,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Either the run doesn't exist or it belongs to another user.
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a run, ensuring it belongs to the specified user.
func (r *mongoRunRepository) Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	filter := bson.M{
		"_id":    id,
		"userId": userID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRunIndexes creates necessary indexes. Call during startup.
func EnsureRunIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: a user's runs ordered by date descending
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
