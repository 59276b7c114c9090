package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe    = regexp.MustCompile(`^[0-9+\-\s()]+$`)
)

type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Username     string `gorm:"uniqueIndex;size:30;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	Phone        string `gorm:"size:32" json:"phone"`
	Role         string `gorm:"size:16;not null;default:user" json:"role"` // "user"/"admin"

	ResetPasswordToken   *string    `gorm:"size:64;index" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// HasValidResetToken 要么没有 token，要么 token+未过期才算有效
func (u *User) HasValidResetToken(token string, now time.Time) bool {
	if u.ResetPasswordToken == nil || u.ResetPasswordExpires == nil {
		return false
	}
	return *u.ResetPasswordToken == token && u.ResetPasswordExpires.After(now)
}

func (u *User) ClearResetToken() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
}

// NormalizeEmail 统一小写，入库和比对前都要先走这里
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateNewUser 注册入参校验（密码在 service 层哈希，这里只查明文长度）
func ValidateNewUser(username, email, password, phone string) error {
	ve := &ValidationError{}
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 30 {
		ve.Add("username", "username must be between 3 and 30 characters")
	} else if !usernameRe.MatchString(username) {
		ve.Add("username", "username can only contain letters, numbers, and underscores")
	}
	if !emailRe.MatchString(NormalizeEmail(email)) {
		ve.Add("email", "please enter a valid email")
	}
	if len(password) < 6 {
		ve.Add("password", "password must be at least 6 characters long")
	}
	if msg := validatePhone(phone); msg != "" {
		ve.Add("phone", msg)
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

// ValidateProfile 个人资料更新只允许改 email/phone
func ValidateProfile(email, phone string) error {
	ve := &ValidationError{}
	if !emailRe.MatchString(NormalizeEmail(email)) {
		ve.Add("email", "please enter a valid email")
	}
	if msg := validatePhone(phone); msg != "" {
		ve.Add("phone", msg)
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

func validatePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" || !phoneRe.MatchString(phone) {
		return "please enter a valid phone number"
	}
	return ""
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)
	EmailTakenByOther(ctx context.Context, email, excludeID string) (bool, error)
	Update(ctx context.Context, u *User) error
}
