package dto

import (
	"time"

	"github.com/openjudge-io/judge-api/internal/models"
)

// ProblemSetCreateRequest describes the payload for creating a problem set.
// The url is optional; one is generated from the new row's id when omitted.
type ProblemSetCreateRequest struct {
	Title            string    `json:"title" validate:"required,min=1,max=255"`
	Content          string    `json:"content"`
	Hidden           bool      `json:"hidden"`
	URL              string    `json:"url" validate:"omitempty,min=1,max=255"`
	ScoreboardHidden bool      `json:"scoreboard_hidden"`
	AvailableTime    time.Time `json:"available_time" validate:"required"`
	DueTime          time.Time `json:"due_time" validate:"required"`
}

// ProblemSetUpdateRequest describes a partial update. The url is immutable
// after creation and deliberately absent here.
type ProblemSetUpdateRequest struct {
	Title            *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Content          *string    `json:"content"`
	Hidden           *bool      `json:"hidden"`
	ScoreboardHidden *bool      `json:"scoreboard_hidden"`
	AvailableTime    *time.Time `json:"available_time"`
	DueTime          *time.Time `json:"due_time"`
}

// ProblemSetCloneRequest references the source problem set to duplicate into
// the domain addressed by the request path.
type ProblemSetCloneRequest struct {
	ProblemSet string `json:"problem_set" validate:"required"`
	URL        string `json:"url" validate:"omitempty,min=1,max=255"`
}

// ProblemSetResponse is the serialized representation returned to clients.
type ProblemSetResponse struct {
	ID               uint      `json:"id"`
	Domain           uint      `json:"domain"`
	Owner            uint      `json:"owner"`
	URL              string    `json:"url"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Hidden           bool      `json:"hidden"`
	ScoreboardHidden bool      `json:"scoreboard_hidden"`
	AvailableTime    time.Time `json:"available_time"`
	DueTime          time.Time `json:"due_time"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProblemSetListResponse wraps a paginated listing.
type ProblemSetListResponse struct {
	Results []ProblemSetResponse `json:"results"`
	Total   int64                `json:"total"`
}

// NewProblemSetResponse converts a model into a DTO.
func NewProblemSetResponse(model models.ProblemSet) ProblemSetResponse {
	return ProblemSetResponse{
		ID:               model.ID,
		Domain:           model.DomainID,
		Owner:            model.OwnerID,
		URL:              model.URL,
		Title:            model.Title,
		Content:          model.Content,
		Hidden:           model.Hidden,
		ScoreboardHidden: model.ScoreboardHidden,
		AvailableTime:    model.AvailableTime,
		DueTime:          model.DueTime,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

// NewProblemSetResponseSlice converts a slice of models into DTOs.
func NewProblemSetResponseSlice(sets []models.ProblemSet) []ProblemSetResponse {
	responses := make([]ProblemSetResponse, 0, len(sets))
	for _, set := range sets {
		responses = append(responses, NewProblemSetResponse(set))
	}
	return responses
}
