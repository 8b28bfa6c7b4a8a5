package payload

import (
	"time"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
)

// UserResponse is a user record as listed on the admin dashboard. The
// password hash is never part of any response type.
type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewUserListResponse maps user records for listing.
func NewUserListResponse(users []*model.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp := UserResponse{
			ID:        user.ID.Hex(),
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt,
		}
		if !user.LastLoginAt.IsZero() {
			lastLogin := user.LastLoginAt
			resp.LastLoginAt = &lastLogin
		}
		responses = append(responses, resp)
	}
	return responses
}

// TestResponse is a test definition as listed for test selection. Question
// IDs stay server-side; only the count is exposed.
type TestResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Subject         string    `json:"subject"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	QuestionCount   int       `json:"questionCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewTestListResponse maps test definitions for listing.
func NewTestListResponse(tests []*model.Test) []TestResponse {
	responses := make([]TestResponse, 0, len(tests))
	for _, test := range tests {
		responses = append(responses, TestResponse{
			ID:              test.ID.Hex(),
			Title:           test.Title,
			Subject:         test.Subject,
			Description:     test.Description,
			DurationMinutes: test.DurationMinutes,
			QuestionCount:   len(test.QuestionIDs),
			CreatedAt:       test.CreatedAt,
		})
	}
	return responses
}

// StatsResponse is the dashboard statistics summary.
type StatsResponse struct {
	Users     int64 `json:"users"`
	Questions int64 `json:"questions"`
	Tests     int64 `json:"tests"`
	Attempts  int64 `json:"attempts"`
}
