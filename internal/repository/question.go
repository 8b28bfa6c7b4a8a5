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

// QuestionRepository defines the interface for question-related database operations.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, question *model.Question) (*model.Question, error)
	GetQuestion(ctx context.Context, id string) (*model.Question, error)
	ListQuestionsBySubject(ctx context.Context, subject string) ([]*model.Question, error)
	DeleteQuestion(ctx context.Context, id string) (*model.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
}

const questionCollection = "questions"

type questionMongoRepository struct {
	db *mongo.Database
}

func NewQuestionMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) QuestionRepository {
	collection := db.Collection(questionCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "subject", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create question indexes")
	}

	return &questionMongoRepository{db: db}
}

func (r *questionMongoRepository) CreateQuestion(
	ctx context.Context,
	question *model.Question,
) (*model.Question, error) {
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	result, err := r.db.Collection(questionCollection).InsertOne(ctx, question)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		question.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return question, nil
}

func (r *questionMongoRepository) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(questionCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var question model.Question
	if err := result.Decode(&question); err != nil {
		return nil, err
	}

	return &question, nil
}

// ListQuestionsBySubject returns all questions for a subject in insertion order.
func (r *questionMongoRepository) ListQuestionsBySubject(
	ctx context.Context,
	subject string,
) ([]*model.Question, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.db.Collection(questionCollection).Find(ctx, bson.M{"subject": subject}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	for cursor.Next(ctx) {
		var question model.Question
		if err := cursor.Decode(&question); err != nil {
			return nil, err
		}
		questions = append(questions, &question)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}

func (r *questionMongoRepository) DeleteQuestion(ctx context.Context, id string) (*model.Question, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(questionCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var question model.Question
	if err := result.Decode(&question); err != nil {
		return nil, err
	}

	return &question, nil
}

func (r *questionMongoRepository) CountQuestions(ctx context.Context) (int64, error) {
	return r.db.Collection(questionCollection).CountDocuments(ctx, bson.M{})
}
