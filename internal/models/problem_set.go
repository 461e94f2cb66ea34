package models

import "time"

// ProblemSet is a timed collection of problems assigned within a domain.
// The url doubles as a human-friendly identifier and is unique per domain.
type ProblemSet struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	DomainID         uint      `gorm:"not null;uniqueIndex:idx_problem_set_domain_url" json:"domain_id"`
	OwnerID          uint      `gorm:"not null" json:"owner_id"`
	URL              string    `gorm:"size:255;not null;uniqueIndex:idx_problem_set_domain_url" json:"url"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	Content          string    `gorm:"type:text" json:"content"`
	Hidden           bool      `gorm:"not null;default:false" json:"hidden"`
	ScoreboardHidden bool      `gorm:"not null;default:false" json:"scoreboard_hidden"`
	AvailableTime    time.Time `gorm:"not null" json:"available_time"`
	DueTime          time.Time `gorm:"not null" json:"due_time"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NotYetAvailable reports whether the set is still closed at the reference time.
func (p ProblemSet) NotYetAvailable(reference time.Time) bool {
	return reference.Before(p.AvailableTime)
}

// PastDue reports whether the reference time falls after the due time.
func (p ProblemSet) PastDue(reference time.Time) bool {
	return !p.DueTime.IsZero() && reference.After(p.DueTime)
}
