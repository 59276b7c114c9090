package domain

// Identity 每个请求解析一次会话后挂到请求上下文里，替代全局可变状态
type Identity struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (i *Identity) IsAdmin() bool { return i != nil && i.Role == RoleAdmin }

// IdentityOf 未登录返回 nil（匿名）
func IdentityOf(u *User) *Identity {
	if u == nil {
		return nil
	}
	return &Identity{UserID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}
