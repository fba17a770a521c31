// Package model contains the persistence models mirroring the database schema.
package model

import "time"

// UserModel mirrors the 'users' table. Username and email carry unique
// indexes; roles are stored as a JSON array.
type UserModel struct {
	ID           int64    `gorm:"primaryKey;autoIncrement"`
	Username     string   `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string   `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string   `gorm:"type:varchar(255);not null"`
	Age          *int     `gorm:"type:int"`
	Roles        []string `gorm:"type:jsonb;serializer:json;not null"`
	IsActive     bool     `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
