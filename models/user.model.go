package models

import "time"

// User is the authoring account referenced by the auth middleware. Token
// issuance lives in the identity service; this table only backs role checks
// and publish notifications.
type User struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Role      string     `json:"role" gorm:"default:'AUTHOR'"` // AUTHOR, ADMIN
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `gorm:"default:false"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
