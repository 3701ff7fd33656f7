package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Роли пользователей
const (
	RoleRegistered = "registered"
	RolePremium    = "premium"
	RoleDesigner   = "designer"
	RoleAdmin      = "admin"
)

// User представляет пользователя в системе
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:100;not null" json:"name"`
	Email           string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password        string     `gorm:"size:100;not null" json:"-"`
	Role            string     `gorm:"size:20;not null;default:'registered'" json:"role"`
	IsActive        bool       `gorm:"not null;default:true" json:"isActive"`
	EmailVerifiedAt *time.Time `gorm:"type:timestamp" json:"emailVerifiedAt,omitempty"`
	LastLoginAt     *time.Time `gorm:"type:timestamp" json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// IsAdmin проверяет роль администратора
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsEmailVerified проверяет, подтвержден ли email
func (u *User) IsEmailVerified() bool {
	return u.EmailVerifiedAt != nil
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
