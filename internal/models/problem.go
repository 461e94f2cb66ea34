package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProblemGroup is a cross-domain grouping identity shared by problems that
// are conceptually the same problem reused in multiple places. Cloning a
// problem never duplicates its group.
type ProblemGroup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Problem belongs to exactly one problem set and references a shared
// problem group.
type Problem struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	DomainID       uint           `gorm:"not null;index" json:"domain_id"`
	OwnerID        uint           `gorm:"not null" json:"owner_id"`
	ProblemSetID   uint           `gorm:"not null;index" json:"problem_set_id"`
	ProblemGroupID uint           `gorm:"not null;index" json:"problem_group_id"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Content        string         `gorm:"type:text" json:"content"`
	Data           string         `gorm:"size:512" json:"data"`
	DataVersion    int            `gorm:"not null;default:2" json:"data_version"`
	Languages      datatypes.JSON `gorm:"type:json" json:"languages"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
