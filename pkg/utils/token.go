package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewToken 32 字节随机数的 hex，用作会话令牌和密码重置令牌
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
