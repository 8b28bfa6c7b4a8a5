package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
	"github.com/AmCoder2104/exam-portal-api/internal/repository"
)

// AttemptUsecase drives the lifecycle of a test attempt: started when the
// user opens a test, mutated as answers and flagged events come in, and
// finalized on completion or abandonment.
type AttemptUsecase interface {
	Start(ctx context.Context, caller Caller, params StartAttemptParams) (*model.TestAttempt, error)
	SubmitAnswer(ctx context.Context, caller Caller, attemptID string, params SubmitAnswerParams) (*model.TestAttempt, error)
	RecordSuspicious(ctx context.Context, caller Caller, attemptID string, params SuspiciousParams) error
	Complete(ctx context.Context, caller Caller, attemptID string) (*model.TestAttempt, error)
	Abandon(ctx context.Context, caller Caller, attemptID string) (*model.TestAttempt, error)
	Get(ctx context.Context, caller Caller, attemptID string) (*model.TestAttempt, error)
}

// Caller identifies the authenticated user performing an operation.
type Caller struct {
	ID   string
	Role string
}

// StartAttemptParams defines the parameters for starting a test attempt.
type StartAttemptParams struct {
	TestID    string
	IPAddress string
	Device    string
	Browser   string
}

// SubmitAnswerParams defines the parameters for answering a question.
type SubmitAnswerParams struct {
	QuestionID     string
	SelectedOption int
}

// SuspiciousParams defines the parameters for recording a flagged event.
type SuspiciousParams struct {
	Type    string
	Details string
}

var (
	ErrTestNotFound        = errors.New("test not found")
	ErrAttemptNotFound     = errors.New("test attempt not found")
	ErrNotAttemptOwner     = errors.New("attempt belongs to another user")
	ErrAttemptFinished     = errors.New("attempt is no longer in progress")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrAlreadyAnswered     = errors.New("question already answered in this attempt")
	ErrInvalidActivityType = errors.New("invalid suspicious activity type")
)

type attemptUsecase struct {
	attemptRepo  repository.TestAttemptRepository
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
}

// NewAttemptUsecase creates a new instance of AttemptUsecase.
func NewAttemptUsecase(
	attemptRepo repository.TestAttemptRepository,
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
) AttemptUsecase {
	return &attemptUsecase{
		attemptRepo:  attemptRepo,
		testRepo:     testRepo,
		questionRepo: questionRepo,
	}
}

func (u *attemptUsecase) Start(
	ctx context.Context,
	caller Caller,
	params StartAttemptParams,
) (*model.TestAttempt, error) {
	test, err := u.testRepo.GetTest(ctx, params.TestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTestNotFound
		}

		return nil, err
	}

	userID, err := bson.ObjectIDFromHex(caller.ID)
	if err != nil {
		return nil, err
	}

	return u.attemptRepo.CreateAttempt(ctx, &model.TestAttempt{
		TestID:         test.ID,
		UserID:         userID,
		StartTime:      time.Now(),
		TotalQuestions: len(test.QuestionIDs),
		Status:         model.AttemptStatusInProgress,
		IPAddress:      params.IPAddress,
		Device:         params.Device,
		Browser:        params.Browser,
	})
}

func (u *attemptUsecase) SubmitAnswer(
	ctx context.Context,
	caller Caller,
	attemptID string,
	params SubmitAnswerParams,
) (*model.TestAttempt, error) {
	attempt, err := u.ownedInProgressAttempt(ctx, caller, attemptID)
	if err != nil {
		return nil, err
	}

	questionID, err := bson.ObjectIDFromHex(params.QuestionID)
	if err != nil {
		return nil, ErrQuestionNotFound
	}

	for _, answer := range attempt.Answers {
		if answer.QuestionID == questionID {
			return nil, ErrAlreadyAnswered
		}
	}

	question, err := u.questionRepo.GetQuestion(ctx, params.QuestionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuestionNotFound
		}

		return nil, err
	}

	answer := model.AttemptAnswer{
		QuestionID:     question.ID,
		SelectedOption: params.SelectedOption,
		IsCorrect:      params.SelectedOption == question.CorrectAnswer,
		AnsweredAt:     time.Now(),
	}

	return u.attemptRepo.AppendAnswer(ctx, attemptID, answer)
}

func (u *attemptUsecase) RecordSuspicious(
	ctx context.Context,
	caller Caller,
	attemptID string,
	params SuspiciousParams,
) error {
	if !model.ValidActivityType(params.Type) {
		return ErrInvalidActivityType
	}

	if _, err := u.ownedInProgressAttempt(ctx, caller, attemptID); err != nil {
		return err
	}

	return u.attemptRepo.AddSuspiciousActivity(ctx, attemptID, model.SuspiciousActivity{
		ID:        uuid.NewString(),
		Type:      params.Type,
		Timestamp: time.Now(),
		Details:   params.Details,
	})
}

func (u *attemptUsecase) Complete(
	ctx context.Context,
	caller Caller,
	attemptID string,
) (*model.TestAttempt, error) {
	return u.finalize(ctx, caller, attemptID, model.AttemptStatusCompleted)
}

func (u *attemptUsecase) Abandon(
	ctx context.Context,
	caller Caller,
	attemptID string,
) (*model.TestAttempt, error) {
	return u.finalize(ctx, caller, attemptID, model.AttemptStatusAbandoned)
}

func (u *attemptUsecase) Get(
	ctx context.Context,
	caller Caller,
	attemptID string,
) (*model.TestAttempt, error) {
	attempt, err := u.attemptRepo.GetAttempt(ctx, attemptID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAttemptNotFound
		}

		return nil, err
	}

	if attempt.UserID.Hex() != caller.ID && caller.Role != model.RoleAdmin {
		return nil, ErrNotAttemptOwner
	}

	return attempt, nil
}

func (u *attemptUsecase) finalize(
	ctx context.Context,
	caller Caller,
	attemptID string,
	status string,
) (*model.TestAttempt, error) {
	attempt, err := u.ownedInProgressAttempt(ctx, caller, attemptID)
	if err != nil {
		return nil, err
	}

	return u.attemptRepo.FinalizeAttempt(ctx, attemptID, repository.FinalizeAttemptParams{
		Status:         status,
		Score:          attempt.CorrectAnswers,
		CorrectAnswers: attempt.CorrectAnswers,
		EndTime:        time.Now(),
	})
}

// ownedInProgressAttempt loads an attempt and checks that the caller owns it
// and that it has not been finalized.
func (u *attemptUsecase) ownedInProgressAttempt(
	ctx context.Context,
	caller Caller,
	attemptID string,
) (*model.TestAttempt, error) {
	attempt, err := u.attemptRepo.GetAttempt(ctx, attemptID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAttemptNotFound
		}

		return nil, err
	}

	if attempt.UserID.Hex() != caller.ID {
		return nil, ErrNotAttemptOwner
	}

	if attempt.Status != model.AttemptStatusInProgress {
		return nil, ErrAttemptFinished
	}

	return attempt, nil
}
