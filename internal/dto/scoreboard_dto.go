package dto

import (
	"time"

	"github.com/openjudge-io/judge-api/internal/models"
)

// UserResponse is the minimal user representation embedded in scoreboards.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	RealName string `json:"real_name"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:       model.ID,
		Username: model.Username,
		RealName: model.RealName,
	}
}

// Score is one user's standing on one problem. TimeSpent serializes as
// nanoseconds, matching time.Duration's JSON encoding.
type Score struct {
	Score     int64         `json:"score"`
	Time      time.Time     `json:"time"`
	FullScore int64         `json:"full_score"`
	TimeSpent time.Duration `json:"time_spent"`
	Tried     bool          `json:"tried"`
}

// UserScore aggregates one user's standing across a whole problem set. The
// Scores slice is ordered like the scoreboard's ProblemIDs.
type UserScore struct {
	User           UserResponse  `json:"user"`
	TotalScore     int64         `json:"total_score"`
	TotalTimeSpent time.Duration `json:"total_time_spent"`
	Scores         []Score       `json:"scores"`
}

// ScoreboardResponse is the ranked aggregation returned by the scoreboard
// endpoint. ProblemIDs supply the column headers.
type ScoreboardResponse struct {
	Results    []UserScore `json:"results"`
	ProblemIDs []uint      `json:"problem_ids"`
}
