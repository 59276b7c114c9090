package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-gin-inventory/internal/domain"
	"go-gin-inventory/pkg/utils"
)

// record 会话里只序列化 user id，每次解析重新查库拿完整用户
type record struct {
	UserID    string `json:"user_id"`
	TouchedAt int64  `json:"touched_at"`
}

type Manager struct {
	store      Store
	users      domain.UserRepository
	ttl        time.Duration // 绝对有效期（自最后一次写起）
	touchAfter time.Duration // 距上次 touch 超过这个值才回写，限制写放大
	now        func() time.Time
}

func NewManager(store Store, users domain.UserRepository, ttl, touchAfter time.Duration) *Manager {
	return &Manager{
		store:      store,
		users:      users,
		ttl:        ttl,
		touchAfter: touchAfter,
		now:        time.Now,
	}
}

// Establish 登录成功后调用，返回不透明令牌
func (m *Manager) Establish(ctx context.Context, userID string) (string, error) {
	token, err := utils.NewToken()
	if err != nil {
		return "", err
	}
	if err := m.write(ctx, token, userID); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve 把令牌换成用户。令牌缺失/过期/用户已删除都返回 (nil, nil)，
// 即匿名，而不是错误；用户已删除时顺带销毁会话。
func (m *Manager) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}
	b, err := m.store.Get(ctx, token)
	if errors.Is(err, ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		// 脏数据当作无会话处理
		_ = m.store.Delete(ctx, token)
		return nil, nil
	}

	u, err := m.users.FindByID(ctx, rec.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		_ = m.store.Delete(ctx, token)
		return nil, nil
	}

	// lazy touch：距上次回写超过阈值才延长 TTL
	if m.now().Sub(time.Unix(rec.TouchedAt, 0)) > m.touchAfter {
		if err := m.write(ctx, token, rec.UserID); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Invalidate 显式登出，必须删掉服务端状态而不只是清 cookie
func (m *Manager) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}

func (m *Manager) TTL() time.Duration { return m.ttl }

func (m *Manager) write(ctx context.Context, token, userID string) error {
	b, err := json.Marshal(record{UserID: userID, TouchedAt: m.now().Unix()})
	if err != nil {
		return err
	}
	return m.store.Set(ctx, token, b, m.ttl)
}
