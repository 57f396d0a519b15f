package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	// 配送先のデフォルト住所（注文時にshipping_address未指定ならこれを使う）
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
