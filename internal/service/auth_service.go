package service

import (
	"context"
	"strings"
	"time"

	"go-gin-inventory/internal/core/database"
	"go-gin-inventory/internal/domain"
	"go-gin-inventory/pkg/utils"
)

const resetTokenTTL = time.Hour

type AuthService struct {
	users domain.UserRepository
	now   func() time.Time
}

func NewAuthService(users domain.UserRepository) *AuthService {
	return &AuthService{users: users, now: time.Now}
}

// Authenticate 用户名或邮箱 + 明文密码换用户。
// 查无此人和密码不对返回同一个错误，防止枚举账号。
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	u, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    string
}

// Register 用户名、邮箱依次独立查重，先命中的字段报冲突
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := domain.ValidateNewUser(in.Username, in.Email, in.Password, in.Phone); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	email := domain.NormalizeEmail(in.Email)

	if existing, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &domain.ConflictError{Field: "username", Message: "username already exists"}
	}
	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &domain.ConflictError{Field: "email", Message: "email already exists"}
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发兜底：两个请求同时通过了查重，唯一索引会拦下后者
		if database.IsDupKey(err) {
			return nil, &domain.ConflictError{Field: "account", Message: "username or email already exists"}
		}
		return nil, err
	}
	return u, nil
}

// ForgotPassword 邮箱不存在时返回空 token 且不写库（响应层给统一话术）
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", nil
	}
	token, err := utils.NewToken()
	if err != nil {
		return "", err
	}
	expires := s.now().Add(resetTokenTTL)
	u.ResetPasswordToken = &token
	u.ResetPasswordExpires = &expires
	if err := s.users.Update(ctx, u); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword 消费 token：校验存在且未过期，改密后清掉 token
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		ve := &domain.ValidationError{}
		ve.Add("password", "password must be at least 6 characters long")
		return ve
	}
	u, err := s.users.FindByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if u == nil || !u.HasValidResetToken(token, s.now()) {
		return &domain.NotFoundError{Resource: "reset token", ID: token}
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.ClearResetToken()
	return s.users.Update(ctx, u)
}

// UpdateProfile 只开放 email/phone，email 查重要排除自己
func (s *AuthService) UpdateProfile(ctx context.Context, userID, email, phone string) (*domain.User, error) {
	if err := domain.ValidateProfile(email, phone); err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &domain.NotFoundError{Resource: "user", ID: userID}
	}
	email = domain.NormalizeEmail(email)
	if email != u.Email {
		taken, err := s.users.EmailTakenByOther(ctx, email, u.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &domain.ConflictError{Field: "email", Message: "email already exists"}
		}
	}
	u.Email = email
	u.Phone = strings.TrimSpace(phone)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser 个人资料页用
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &domain.NotFoundError{Resource: "user", ID: userID}
	}
	return u, nil
}
