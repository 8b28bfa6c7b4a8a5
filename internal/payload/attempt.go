package payload

import (
	"time"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
)

// StartAttemptRequest is the body of POST /api/attempts. Device is the
// client's own description of its hardware; IP and browser are taken from
// the request.
type StartAttemptRequest struct {
	TestID string `json:"testId" validate:"required"`
	Device string `json:"device"`
}

// SubmitAnswerRequest is the body of POST /api/attempts/{id}/answers.
type SubmitAnswerRequest struct {
	QuestionID     string `json:"questionId"     validate:"required"`
	SelectedOption int    `json:"selectedOption" validate:"gte=0"`
}

// SuspiciousActivityRequest is the body of POST /api/attempts/{id}/suspicious.
type SuspiciousActivityRequest struct {
	Type    string `json:"type" validate:"required"`
	Details string `json:"details"`
}

// AttemptResponse is a test attempt as returned by the API.
type AttemptResponse struct {
	ID                   string                    `json:"id"`
	TestID               string                    `json:"testId"`
	UserID               string                    `json:"userId"`
	StartTime            time.Time                 `json:"startTime"`
	EndTime              *time.Time                `json:"endTime,omitempty"`
	Score                int                       `json:"score"`
	TotalQuestions       int                       `json:"totalQuestions"`
	CorrectAnswers       int                       `json:"correctAnswers"`
	Status               string                    `json:"status"`
	Answers              []AttemptAnswerResponse   `json:"answers"`
	SuspiciousActivities []SuspiciousEventResponse `json:"suspiciousActivities"`
}

// AttemptAnswerResponse is a single answer within an attempt.
type AttemptAnswerResponse struct {
	QuestionID     string    `json:"questionId"`
	SelectedOption int       `json:"selectedOption"`
	IsCorrect      bool      `json:"isCorrect"`
	AnsweredAt     time.Time `json:"answeredAt"`
}

// SuspiciousEventResponse is a flagged event within an attempt.
type SuspiciousEventResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

// NewAttemptResponse maps a test attempt.
func NewAttemptResponse(attempt *model.TestAttempt) AttemptResponse {
	resp := AttemptResponse{
		ID:             attempt.ID.Hex(),
		TestID:         attempt.TestID.Hex(),
		UserID:         attempt.UserID.Hex(),
		StartTime:      attempt.StartTime,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		CorrectAnswers: attempt.CorrectAnswers,
		Status:         attempt.Status,
	}

	if !attempt.EndTime.IsZero() {
		endTime := attempt.EndTime
		resp.EndTime = &endTime
	}

	resp.Answers = make([]AttemptAnswerResponse, 0, len(attempt.Answers))
	for _, answer := range attempt.Answers {
		resp.Answers = append(resp.Answers, AttemptAnswerResponse{
			QuestionID:     answer.QuestionID.Hex(),
			SelectedOption: answer.SelectedOption,
			IsCorrect:      answer.IsCorrect,
			AnsweredAt:     answer.AnsweredAt,
		})
	}

	resp.SuspiciousActivities = make([]SuspiciousEventResponse, 0, len(attempt.SuspiciousActivities))
	for _, activity := range attempt.SuspiciousActivities {
		resp.SuspiciousActivities = append(resp.SuspiciousActivities, SuspiciousEventResponse{
			ID:        activity.ID,
			Type:      activity.Type,
			Timestamp: activity.Timestamp,
			Details:   activity.Details,
		})
	}

	return resp
}
