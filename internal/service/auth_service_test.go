package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-inventory/internal/domain"
	"go-gin-inventory/pkg/utils"
)

type fakeUserRepo struct {
	byID map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[string]*domain.User{}}
	for _, u := range users {
		cp := *u
		r.byID[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) FindByUsernameOrEmail(_ context.Context, identifier string) (*domain.User, error) {
	email := domain.NormalizeEmail(identifier)
	for _, u := range r.byID {
		if u.Username == identifier || u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByResetToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) EmailTakenByOther(_ context.Context, email, excludeID string) (bool, error) {
	email = domain.NormalizeEmail(email)
	for _, u := range r.byID {
		if u.ID != excludeID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := utils.HashPassword(pw)
	require.NoError(t, err)
	return h
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success defaults to user role", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewAuthService(users)

		u, err := svc.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "A@X.Com",
			Password: "secret1",
			Phone:    "555-0100",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, u.Role)
		assert.Equal(t, "a@x.com", u.Email, "email normalized")
		assert.NotEqual(t, "secret1", u.PasswordHash)
		assert.True(t, utils.CheckPassword("secret1", u.PasswordHash))
		assert.Len(t, users.byID, 1)
	})

	t.Run("duplicate username names the field", func(t *testing.T) {
		users := newFakeUserRepo(&domain.User{ID: "u1", Username: "alice", Email: "a@x.com"})
		svc := NewAuthService(users)

		_, err := svc.Register(ctx, RegisterInput{
			Username: "alice", Email: "other@x.com", Password: "secret1", Phone: "555",
		})
		var ce *domain.ConflictError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "username", ce.Field)
		assert.Len(t, users.byID, 1, "no new user created")
	})

	t.Run("duplicate email with distinct username names email", func(t *testing.T) {
		users := newFakeUserRepo(&domain.User{ID: "u1", Username: "alice", Email: "a@x.com"})
		svc := NewAuthService(users)

		_, err := svc.Register(ctx, RegisterInput{
			Username: "bob", Email: "a@x.com", Password: "secret1", Phone: "555",
		})
		var ce *domain.ConflictError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "email", ce.Field)
		assert.Len(t, users.byID, 1)
	})

	t.Run("invalid input rejected before lookups", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())
		_, err := svc.Register(ctx, RegisterInput{Username: "a!", Email: "bad", Password: "123", Phone: ""})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(&domain.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: mustHash(t, "secret1"),
	})
	svc := NewAuthService(users)

	t.Run("by username", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
	})

	t.Run("by email case-insensitive", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "A@X.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, errWrongPw := svc.Authenticate(ctx, "alice", "nope")
		_, errNoUser := svc.Authenticate(ctx, "mallory", "secret1")

		require.ErrorIs(t, errWrongPw, domain.ErrInvalidCredentials)
		require.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
		assert.Equal(t, errWrongPw.Error(), errNoUser.Error())
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email issues no token", func(t *testing.T) {
		users := newFakeUserRepo(&domain.User{ID: "u1", Username: "alice", Email: "a@x.com"})
		svc := NewAuthService(users)

		token, err := svc.ForgotPassword(ctx, "ghost@x.com")
		require.NoError(t, err)
		assert.Empty(t, token)
		assert.Nil(t, users.byID["u1"].ResetPasswordToken, "no token written")
	})

	t.Run("known email stores token with 1h expiry", func(t *testing.T) {
		users := newFakeUserRepo(&domain.User{ID: "u1", Username: "alice", Email: "a@x.com"})
		svc := NewAuthService(users)
		base := time.Now()
		svc.now = func() time.Time { return base }

		token, err := svc.ForgotPassword(ctx, "a@x.com")
		require.NoError(t, err)
		require.Len(t, token, 64)

		stored := users.byID["u1"]
		require.NotNil(t, stored.ResetPasswordToken)
		assert.Equal(t, token, *stored.ResetPasswordToken)
		require.NotNil(t, stored.ResetPasswordExpires)
		assert.Equal(t, base.Add(time.Hour), *stored.ResetPasswordExpires)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*AuthService, *fakeUserRepo, string) {
		users := newFakeUserRepo(&domain.User{
			ID: "u1", Username: "alice", Email: "a@x.com",
			PasswordHash: mustHash(t, "oldpass"),
		})
		svc := NewAuthService(users)
		token, err := svc.ForgotPassword(ctx, "a@x.com")
		require.NoError(t, err)
		return svc, users, token
	}

	t.Run("consumes token and clears it", func(t *testing.T) {
		svc, users, token := setup(t)

		require.NoError(t, svc.ResetPassword(ctx, token, "newpass1"))

		stored := users.byID["u1"]
		assert.True(t, utils.CheckPassword("newpass1", stored.PasswordHash))
		assert.Nil(t, stored.ResetPasswordToken)
		assert.Nil(t, stored.ResetPasswordExpires)

		// 二次使用同一 token 必须失败
		err := svc.ResetPassword(ctx, token, "another1")
		var nfe *domain.NotFoundError
		assert.ErrorAs(t, err, &nfe)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		svc, _, token := setup(t)
		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		err := svc.ResetPassword(ctx, token, "newpass1")
		var nfe *domain.NotFoundError
		assert.ErrorAs(t, err, &nfe)
	})

	t.Run("short password rejected", func(t *testing.T) {
		svc, _, token := setup(t)
		err := svc.ResetPassword(ctx, token, "123")
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("updates email and phone", func(t *testing.T) {
		users := newFakeUserRepo(&domain.User{ID: "u1", Username: "alice", Email: "a@x.com", Phone: "555"})
		svc := NewAuthService(users)

		u, err := svc.UpdateProfile(ctx, "u1", "New@X.com", "555-0199")
		require.NoError(t, err)
		assert.Equal(t, "new@x.com", u.Email)
		assert.Equal(t, "555-0199", u.Phone)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		users := newFakeUserRepo(
			&domain.User{ID: "u1", Username: "alice", Email: "a@x.com"},
			&domain.User{ID: "u2", Username: "bob", Email: "b@x.com"},
		)
		svc := NewAuthService(users)

		_, err := svc.UpdateProfile(ctx, "u1", "b@x.com", "555")
		var ce *domain.ConflictError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "email", ce.Field)
	})

	t.Run("missing user", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())
		_, err := svc.UpdateProfile(ctx, "ghost", "a@x.com", "555")
		var nfe *domain.NotFoundError
		assert.ErrorAs(t, err, &nfe)
	})
}
