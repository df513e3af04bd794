package models

import "time"

// User 用户
// PasswordHash 会随记录编码持久化，对外输出时使用 View 过滤。
type User struct {
	ID           uint      `json:"id"`            // 主键
	Username     string    `json:"username"`      // 用户名
	PasswordHash string    `json:"password_hash"` // 密码哈希
	CreatedAt    time.Time `json:"created_at"`    // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`    // 更新时间
}

// UserView 用户对外视图（不含密码哈希）
type UserView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// View 转换为对外视图
func (u User) View() UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
