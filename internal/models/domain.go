package models

import "time"

// Domain is a tenant-scoped organizational unit, typically a course, that
// owns problem sets, problems, and memberships.
type Domain struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"size:255;uniqueIndex;not null" json:"url"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	OwnerID   uint      `gorm:"not null" json:"owner_id"`
	Bulletin  string    `gorm:"type:text" json:"bulletin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DomainUser records one user's membership in a domain together with the
// role granting their in-domain permissions.
type DomainUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DomainID  uint      `gorm:"not null;uniqueIndex:idx_domain_user" json:"domain_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_domain_user" json:"user_id"`
	Role      string    `gorm:"size:32;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
}
