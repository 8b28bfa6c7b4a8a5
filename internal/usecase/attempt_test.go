package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
	"github.com/AmCoder2104/exam-portal-api/internal/repository"
)

func inProgressAttempt(owner bson.ObjectID) *model.TestAttempt {
	return &model.TestAttempt{
		ID:             bson.NewObjectID(),
		TestID:         bson.NewObjectID(),
		UserID:         owner,
		TotalQuestions: 3,
		Status:         model.AttemptStatusInProgress,
	}
}

func TestStartAttempt(t *testing.T) {
	testID := bson.NewObjectID()
	ownerID := bson.NewObjectID()

	testRepo := &mockTestRepo{
		getTestFn: func(_ context.Context, id string) (*model.Test, error) {
			assert.Equal(t, testID.Hex(), id)
			return &model.Test{
				ID:          testID,
				Subject:     "web-development",
				QuestionIDs: []bson.ObjectID{bson.NewObjectID(), bson.NewObjectID()},
			}, nil
		},
	}

	attemptRepo := &mockAttemptRepo{
		createAttemptFn: func(_ context.Context, attempt *model.TestAttempt) (*model.TestAttempt, error) {
			attempt.ID = bson.NewObjectID()
			return attempt, nil
		},
	}

	u := NewAttemptUsecase(attemptRepo, testRepo, &mockQuestionRepo{})

	attempt, err := u.Start(context.Background(), Caller{ID: ownerID.Hex(), Role: model.RoleCandidate},
		StartAttemptParams{TestID: testID.Hex(), Browser: "firefox"})
	require.NoError(t, err)

	assert.Equal(t, 2, attempt.TotalQuestions)
	assert.Equal(t, model.AttemptStatusInProgress, attempt.Status)
	assert.Equal(t, ownerID, attempt.UserID)
}

func TestStartAttemptUnknownTest(t *testing.T) {
	testRepo := &mockTestRepo{
		getTestFn: func(_ context.Context, _ string) (*model.Test, error) {
			return nil, mongo.ErrNoDocuments
		},
	}

	u := NewAttemptUsecase(&mockAttemptRepo{}, testRepo, &mockQuestionRepo{})

	_, err := u.Start(context.Background(), Caller{ID: bson.NewObjectID().Hex()},
		StartAttemptParams{TestID: bson.NewObjectID().Hex()})
	assert.ErrorIs(t, err, ErrTestNotFound)
}

func TestSubmitAnswerScoring(t *testing.T) {
	owner := bson.NewObjectID()
	attempt := inProgressAttempt(owner)
	question := &model.Question{
		ID:            bson.NewObjectID(),
		Subject:       "javascript",
		Options:       []string{"a", "b", "c"},
		CorrectAnswer: 1,
	}

	var recorded model.AttemptAnswer

	attemptRepo := &mockAttemptRepo{
		getAttemptFn: func(_ context.Context, _ string) (*model.TestAttempt, error) {
			return attempt, nil
		},
		appendAnswerFn: func(_ context.Context, _ string, answer model.AttemptAnswer) (*model.TestAttempt, error) {
			recorded = answer
			return attempt, nil
		},
	}
	questionRepo := &mockQuestionRepo{
		getQuestionFn: func(_ context.Context, _ string) (*model.Question, error) {
			return question, nil
		},
	}

	u := NewAttemptUsecase(attemptRepo, &mockTestRepo{}, questionRepo)
	caller := Caller{ID: owner.Hex(), Role: model.RoleCandidate}

	_, err := u.SubmitAnswer(context.Background(), caller, attempt.ID.Hex(),
		SubmitAnswerParams{QuestionID: question.ID.Hex(), SelectedOption: 1})
	require.NoError(t, err)
	assert.True(t, recorded.IsCorrect)

	_, err = u.SubmitAnswer(context.Background(), caller, attempt.ID.Hex(),
		SubmitAnswerParams{QuestionID: question.ID.Hex(), SelectedOption: 2})
	require.NoError(t, err)
	assert.False(t, recorded.IsCorrect)
}

func TestSubmitAnswerDuplicateQuestion(t *testing.T) {
	owner := bson.NewObjectID()
	questionID := bson.NewObjectID()
	attempt := inProgressAttempt(owner)
	attempt.Answers = []model.AttemptAnswer{{QuestionID: questionID, SelectedOption: 0}}

	attemptRepo := &mockAttemptRepo{
		getAttemptFn: func(_ context.Context, _ string) (*model.TestAttempt, error) {
			return attempt, nil
		},
	}

	u := NewAttemptUsecase(attemptRepo, &mockTestRepo{}, &mockQuestionRepo{})

	_, err := u.SubmitAnswer(context.Background(), Caller{ID: owner.Hex()}, attempt.ID.Hex(),
		SubmitAnswerParams{QuestionID: questionID.Hex(), SelectedOption: 1})
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestSubmitAnswerFinishedAttempt(t *testing.T) {
	owner := bson.NewObjectID()
	attempt := inProgressAttempt(owner)
	attempt.Status = model.AttemptStatusCompleted

	attemptRepo := &mockAttemptRepo{
		getAttemptFn: func(_ context.Context, _ string) (*model.TestAttempt, error) {
			return attempt, nil
		},
	}

	u := NewAttemptUsecase(attemptRepo, &mockTestRepo{}, &mockQuestionRepo{})

	_, err := u.SubmitAnswer(context.Background(), Caller{ID: owner.Hex()}, attempt.ID.Hex(),
		SubmitAnswerParams{QuestionID: bson.NewObjectID().Hex(), SelectedOption: 0})
	assert.ErrorIs(t, err, ErrAttemptFinished)
}

func TestSubmitAnswerNotOwner(t *testing.T) {
	attempt := inProgressAttempt(bson.NewObjectID())

	attemptRepo := &mockAttemptRepo{
		getAttemptFn: func(_ context.Context, _ string) (*model.TestAttempt, error) {
			return attempt, nil
		},
	}

	u := NewAttemptUsecase(attemptRepo, &mockTestRepo{}, &mockQuestionRepo{})

	_, err := u.SubmitAnswer(context.Background(), Caller{ID: bson.NewObjectID().Hex()}, attempt.ID.Hex(),
		SubmitAnswerParams{QuestionID: bson.NewObjectID().Hex(), SelectedOption: 0})
	assert.ErrorIs(t, err, ErrNotAttemptOwner)
}

func TestRecordSuspiciousInvalidType(t *testing.T) {
	u := NewAttemptUsecase(&mockAttemptRepo{}, &mockTestRepo{}, &mockQuestionRepo{})

	err := u.RecordSuspicious(context.Background(), Caller{ID: bson.NewObjectID().Hex()},
		bson.NewObjectID().Hex(), SuspiciousParams{Type: "telepathy"})
	assert.ErrorIs(t, err, ErrInvalidActivityType)
}

func TestRecordSuspicious(t *testing.T) {
	owner := bson.NewObjectID()
	attempt := inProgressAttempt(owner)

	var recorded model.SuspiciousActivity

	attemptRepo := &mockAttemptRepo{
		getAttemptFn: func(_ context.Context, _ string) (*model.TestAttempt, error) {
			return attempt, nil
		},
		addSuspiciousFn: func(_ context.Context, _ string, activity model.SuspiciousActivity) error {
			recorded = activity
			return nil
		},
	}

	u := NewAttemptUsecase(attemptRepo, &mockTestRepo{}, &mockQuestionRepo{})

	err := u.RecordSuspicious(context.Background(), Caller{ID: owner.Hex()}, attempt.ID.Hex(),
		SuspiciousParams{Type: model.ActivityTabSwitch, Details: "blur event"})
	require.NoError(t, err)

	assert.Equal(t, model.ActivityTabSwitch, recorded.Type)
	assert.NotEmpty(t, recorded.ID)
	assert.False(t, recorded.Timestamp.IsZero())
}

func TestCompleteAttempt(t *testing.T) {
	owner := bson.NewObjectID()
	attempt := inProgressAttempt(owner)
	attempt.CorrectAnswers = 2

	var finalized repository.FinalizeAttemptParams

	attemptRepo := &mockAttemptRepo{
		getAttemptFn: func(_ context.Context, _ string) (*model.TestAttempt, error) {
			return attempt, nil
		},
		finalizeAttemptFn: func(
			_ context.Context,
			_ string,
			params repository.FinalizeAttemptParams,
		) (*model.TestAttempt, error) {
			finalized = params
			return attempt, nil
		},
	}

	u := NewAttemptUsecase(attemptRepo, &mockTestRepo{}, &mockQuestionRepo{})

	_, err := u.Complete(context.Background(), Caller{ID: owner.Hex()}, attempt.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, model.AttemptStatusCompleted, finalized.Status)
	assert.Equal(t, 2, finalized.Score)
	assert.False(t, finalized.EndTime.IsZero())
}

func TestGetAttemptAdminOverride(t *testing.T) {
	attempt := inProgressAttempt(bson.NewObjectID())

	attemptRepo := &mockAttemptRepo{
		getAttemptFn: func(_ context.Context, _ string) (*model.TestAttempt, error) {
			return attempt, nil
		},
	}

	u := NewAttemptUsecase(attemptRepo, &mockTestRepo{}, &mockQuestionRepo{})

	// Admins can read any attempt; other users cannot.
	_, err := u.Get(context.Background(),
		Caller{ID: bson.NewObjectID().Hex(), Role: model.RoleAdmin}, attempt.ID.Hex())
	assert.NoError(t, err)

	_, err = u.Get(context.Background(),
		Caller{ID: bson.NewObjectID().Hex(), Role: model.RoleCandidate}, attempt.ID.Hex())
	assert.ErrorIs(t, err, ErrNotAttemptOwner)
}
