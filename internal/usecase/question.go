package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
	"github.com/AmCoder2104/exam-portal-api/internal/repository"
)

// QuestionUsecase defines question listing and management.
type QuestionUsecase interface {
	ListBySubject(ctx context.Context, subject string) ([]*model.Question, error)
	Create(ctx context.Context, params CreateQuestionParams) (*model.Question, error)
}

// CreateQuestionParams defines the parameters for creating a question.
type CreateQuestionParams struct {
	Subject       string
	Text          string
	Options       []string
	CorrectAnswer int
}

var (
	ErrSubjectRequired = errors.New("subject parameter is required")
	ErrInvalidQuestion = errors.New("invalid question definition")
)

type questionUsecase struct {
	questionRepo repository.QuestionRepository
}

// NewQuestionUsecase creates a new instance of QuestionUsecase.
func NewQuestionUsecase(questionRepo repository.QuestionRepository) QuestionUsecase {
	return &questionUsecase{questionRepo: questionRepo}
}

func (u *questionUsecase) ListBySubject(ctx context.Context, subject string) ([]*model.Question, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, ErrSubjectRequired
	}

	return u.questionRepo.ListQuestionsBySubject(ctx, subject)
}

func (u *questionUsecase) Create(ctx context.Context, params CreateQuestionParams) (*model.Question, error) {
	if len(params.Options) < 2 || params.CorrectAnswer < 0 || params.CorrectAnswer >= len(params.Options) {
		return nil, ErrInvalidQuestion
	}

	return u.questionRepo.CreateQuestion(ctx, &model.Question{
		Subject:       params.Subject,
		Text:          params.Text,
		Options:       params.Options,
		CorrectAnswer: params.CorrectAnswer,
	})
}
