package payload

import (
	"github.com/AmCoder2104/exam-portal-api/internal/model"
)

// QuestionResponse is a question as returned by the API. CorrectAnswer is
// only populated for admin and examiner callers.
type QuestionResponse struct {
	ID            string   `json:"id"`
	Subject       string   `json:"subject"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer,omitempty"`
}

// NewQuestionResponse maps a question, withholding the correct answer
// unless includeAnswer is set.
func NewQuestionResponse(question *model.Question, includeAnswer bool) QuestionResponse {
	resp := QuestionResponse{
		ID:      question.ID.Hex(),
		Subject: question.Subject,
		Text:    question.Text,
		Options: question.Options,
	}

	if includeAnswer {
		answer := question.CorrectAnswer
		resp.CorrectAnswer = &answer
	}

	return resp
}

// NewQuestionListResponse maps a list of questions.
func NewQuestionListResponse(questions []*model.Question, includeAnswers bool) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, NewQuestionResponse(question, includeAnswers))
	}
	return responses
}

// CreateQuestionRequest is the body of POST /api/questions.
type CreateQuestionRequest struct {
	Subject       string   `json:"subject"       validate:"required"`
	Text          string   `json:"text"          validate:"required"`
	Options       []string `json:"options"       validate:"required,min=2,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0"`
}
