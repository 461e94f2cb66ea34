package models

import "time"

// User represents an account known to the judge. Authentication itself is
// delegated to the external OAuth provider; only the fields needed for
// ownership and membership listing live here.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	RealName  string    `gorm:"size:255" json:"real_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
