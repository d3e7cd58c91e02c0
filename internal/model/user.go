package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents an account. New accounts wait for administrator approval.
type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(80);uniqueIndex;not null" json:"username" validate:"max=80"`
	Password     string `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash
	IsAdmin      bool   `gorm:"not null;default:false" json:"is_admin"`
	Approved     bool   `gorm:"not null;default:false" json:"approved"`
	TokenVersion string `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsActive reports whether the account may sign in.
func (u *User) IsActive() bool {
	return u.Approved
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		IsAdmin:   u.IsAdmin,
		Approved:  u.Approved,
		CreatedAt: u.CreatedAt,
	}
}
