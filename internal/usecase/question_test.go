package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
)

func TestListBySubjectRequiresSubject(t *testing.T) {
	u := NewQuestionUsecase(&mockQuestionRepo{})

	for _, subject := range []string{"", "   "} {
		_, err := u.ListBySubject(context.Background(), subject)
		assert.ErrorIs(t, err, ErrSubjectRequired)
	}
}

func TestListBySubject(t *testing.T) {
	questionRepo := &mockQuestionRepo{
		listBySubjectFn: func(_ context.Context, subject string) ([]*model.Question, error) {
			assert.Equal(t, "javascript", subject)
			return []*model.Question{{Subject: "javascript"}}, nil
		},
	}

	u := NewQuestionUsecase(questionRepo)

	questions, err := u.ListBySubject(context.Background(), "javascript")
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestCreateQuestionValidation(t *testing.T) {
	u := NewQuestionUsecase(&mockQuestionRepo{})

	cases := []struct {
		name   string
		params CreateQuestionParams
	}{
		{
			name: "too few options",
			params: CreateQuestionParams{
				Text:          "what is a closure",
				Subject:       "javascript",
				Options:       []string{"only one"},
				CorrectAnswer: 0,
			},
		},
		{
			name: "answer index out of range",
			params: CreateQuestionParams{
				Text:          "what is a closure",
				Subject:       "javascript",
				Options:       []string{"a", "b"},
				CorrectAnswer: 2,
			},
		},
		{
			name: "negative answer index",
			params: CreateQuestionParams{
				Text:          "what is a closure",
				Subject:       "javascript",
				Options:       []string{"a", "b"},
				CorrectAnswer: -1,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := u.Create(context.Background(), tc.params)
			assert.ErrorIs(t, err, ErrInvalidQuestion)
		})
	}
}

func TestCreateQuestion(t *testing.T) {
	questionRepo := &mockQuestionRepo{
		createQuestionFn: func(_ context.Context, question *model.Question) (*model.Question, error) {
			return question, nil
		},
	}

	u := NewQuestionUsecase(questionRepo)

	question, err := u.Create(context.Background(), CreateQuestionParams{
		Text:          "which method adds to the end of an array",
		Subject:       "javascript",
		Options:       []string{"push", "pop", "shift", "unshift"},
		CorrectAnswer: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, question.CorrectAnswer)
}
