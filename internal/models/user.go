package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User is either a client booking appointments or a provider offering them.
type User struct {
	BaseModel
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Provider bool   `gorm:"default:false;index" json:"provider"`
	AvatarID *uint  `json:"avatar_id,omitempty"`

	Avatar *File `gorm:"foreignKey:AvatarID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Provider bool      `json:"provider"`
	Avatar   *FileView `json:"avatar"`
}

// UserSummary is the trimmed user embedded in appointment listings.
type UserSummary struct {
	ID     uint      `json:"id"`
	Name   string    `json:"name"`
	Avatar *FileView `json:"avatar,omitempty"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize(appURL string) UserSanitized {
	return UserSanitized{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Provider: u.Provider,
		Avatar:   u.Avatar.View(appURL),
	}
}

// Summary returns the id/name/avatar view of u, or nil when u is nil.
func (u *User) Summary(appURL string) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar.View(appURL)}
}
