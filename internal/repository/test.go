package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
)

// TestRepository defines the interface for test-related database operations.
type TestRepository interface {
	CreateTest(ctx context.Context, test *model.Test) (*model.Test, error)
	GetTest(ctx context.Context, id string) (*model.Test, error)
	GetTestBySubject(ctx context.Context, subject string) (*model.Test, error)
	ListTests(ctx context.Context, params FilterTestsParams) ([]*model.Test, error)
	CountTests(ctx context.Context) (int64, error)
}

// FilterTestsParams defines the parameters for filtering and paginating tests.
type FilterTestsParams struct {
	Subject *string
	Limit   uint64
	Offset  uint64
}

const testCollection = "tests"

type testMongoRepository struct {
	db *mongo.Database
}

func NewTestMongoRepository(db *mongo.Database) TestRepository {
	return &testMongoRepository{db: db}
}

func (r *testMongoRepository) CreateTest(ctx context.Context, test *model.Test) (*model.Test, error) {
	now := time.Now()
	test.CreatedAt = now
	test.UpdatedAt = now

	result, err := r.db.Collection(testCollection).InsertOne(ctx, test)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		test.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return test, nil
}

func (r *testMongoRepository) GetTest(ctx context.Context, id string) (*model.Test, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(testCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var test model.Test
	if err := result.Decode(&test); err != nil {
		return nil, err
	}

	return &test, nil
}

func (r *testMongoRepository) GetTestBySubject(ctx context.Context, subject string) (*model.Test, error) {
	result := r.db.Collection(testCollection).FindOne(ctx, bson.M{"subject": subject})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var test model.Test
	if err := result.Decode(&test); err != nil {
		return nil, err
	}

	return &test, nil
}

func (r *testMongoRepository) ListTests(ctx context.Context, params FilterTestsParams) ([]*model.Test, error) {
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
	if params.Subject != nil {
		filter["subject"] = *params.Subject
	}

	cursor, err := r.db.Collection(testCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tests []*model.Test
	for cursor.Next(ctx) {
		var test model.Test
		if err := cursor.Decode(&test); err != nil {
			return nil, err
		}
		tests = append(tests, &test)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return tests, nil
}

func (r *testMongoRepository) CountTests(ctx context.Context) (int64, error) {
	return r.db.Collection(testCollection).CountDocuments(ctx, bson.M{})
}
