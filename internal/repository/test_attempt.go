package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
)

// TestAttemptRepository defines the interface for test attempt database operations.
type TestAttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *model.TestAttempt) (*model.TestAttempt, error)
	GetAttempt(ctx context.Context, id string) (*model.TestAttempt, error)
	AppendAnswer(ctx context.Context, id string, answer model.AttemptAnswer) (*model.TestAttempt, error)
	AddSuspiciousActivity(ctx context.Context, id string, activity model.SuspiciousActivity) error
	FinalizeAttempt(ctx context.Context, id string, params FinalizeAttemptParams) (*model.TestAttempt, error)
	ListAttempts(ctx context.Context, params FilterAttemptsParams) ([]*model.TestAttempt, error)
	CountAttempts(ctx context.Context) (int64, error)
}

// FinalizeAttemptParams closes out an attempt in a single update.
type FinalizeAttemptParams struct {
	Status         string    `bson:"status"`
	Score          int       `bson:"score"`
	CorrectAnswers int       `bson:"correct_answers"`
	EndTime        time.Time `bson:"end_time"`
}

// FilterAttemptsParams defines the parameters for filtering and paginating attempts.
type FilterAttemptsParams struct {
	UserID *string
	TestID *string
	Status *string
	Limit  uint64
	Offset uint64
}

const testAttemptCollection = "test_attempts"

type testAttemptMongoRepository struct {
	db *mongo.Database
}

func NewTestAttemptMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) TestAttemptRepository {
	collection := db.Collection(testAttemptCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "test_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create test attempt indexes")
	}

	return &testAttemptMongoRepository{db: db}
}

func (r *testAttemptMongoRepository) CreateAttempt(
	ctx context.Context,
	attempt *model.TestAttempt,
) (*model.TestAttempt, error) {
	now := time.Now()
	attempt.CreatedAt = now
	attempt.UpdatedAt = now
	if attempt.StartTime.IsZero() {
		attempt.StartTime = now
	}
	if attempt.Status == "" {
		attempt.Status = model.AttemptStatusInProgress
	}
	if attempt.Answers == nil {
		attempt.Answers = []model.AttemptAnswer{}
	}
	if attempt.SuspiciousActivities == nil {
		attempt.SuspiciousActivities = []model.SuspiciousActivity{}
	}

	result, err := r.db.Collection(testAttemptCollection).InsertOne(ctx, attempt)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		attempt.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return attempt, nil
}

func (r *testAttemptMongoRepository) GetAttempt(ctx context.Context, id string) (*model.TestAttempt, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(testAttemptCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var attempt model.TestAttempt
	if err := result.Decode(&attempt); err != nil {
		return nil, err
	}

	return &attempt, nil
}

func (r *testAttemptMongoRepository) AppendAnswer(
	ctx context.Context,
	id string,
	answer model.AttemptAnswer,
) (*model.TestAttempt, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$push": bson.M{"answers": answer},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	if answer.IsCorrect {
		update["$inc"] = bson.M{"correct_answers": 1}
	}

	result := r.db.Collection(testAttemptCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var attempt model.TestAttempt
	if err := result.Decode(&attempt); err != nil {
		return nil, err
	}

	return &attempt, nil
}

func (r *testAttemptMongoRepository) AddSuspiciousActivity(
	ctx context.Context,
	id string,
	activity model.SuspiciousActivity,
) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(testAttemptCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$push": bson.M{"suspicious_activities": activity},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

func (r *testAttemptMongoRepository) FinalizeAttempt(
	ctx context.Context,
	id string,
	params FinalizeAttemptParams,
) (*model.TestAttempt, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(testAttemptCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"status":          params.Status,
			"score":           params.Score,
			"correct_answers": params.CorrectAnswers,
			"end_time":        params.EndTime,
			"updated_at":      time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var attempt model.TestAttempt
	if err := result.Decode(&attempt); err != nil {
		return nil, err
	}

	return &attempt, nil
}

func (r *testAttemptMongoRepository) ListAttempts(
	ctx context.Context,
	params FilterAttemptsParams,
) ([]*model.TestAttempt, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	limit := params.Limit
	if limit == 0 {
		limit = 10
	}
	findOptions.SetLimit(int64(limit))

	if params.Offset > 0 {
		findOptions.SetSkip(int64(params.Offset))
	}

	filter := bson.M{}
	if params.UserID != nil {
		objectID, err := bson.ObjectIDFromHex(*params.UserID)
		if err != nil {
			return nil, err
		}
		filter["user_id"] = objectID
	}
	if params.TestID != nil {
		objectID, err := bson.ObjectIDFromHex(*params.TestID)
		if err != nil {
			return nil, err
		}
		filter["test_id"] = objectID
	}
	if params.Status != nil {
		filter["status"] = *params.Status
	}

	cursor, err := r.db.Collection(testAttemptCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var attempts []*model.TestAttempt
	for cursor.Next(ctx) {
		var attempt model.TestAttempt
		if err := cursor.Decode(&attempt); err != nil {
			return nil, err
		}
		attempts = append(attempts, &attempt)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return attempts, nil
}

func (r *testAttemptMongoRepository) CountAttempts(ctx context.Context) (int64, error) {
	return r.db.Collection(testAttemptCollection).CountDocuments(ctx, bson.M{})
}
