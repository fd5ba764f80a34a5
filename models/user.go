package models

import "time"

// User 系統使用者（管理員與櫃檯人員）
type User struct {
	UserID    int       `json:"user_id" gorm:"primaryKey;autoIncrement;type:INT"`
	Username  string    `json:"username" gorm:"type:varchar(50);not null;uniqueIndex" binding:"required,max=50"`
	Password  string    `json:"-" gorm:"type:varchar(100);not null"` // bcrypt 哈希，不回傳前端
	Role      string    `json:"role" gorm:"type:varchar(20);not null;default:staff" binding:"omitempty,oneof=admin staff"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "user"
}

// UserResponse 登入與 /auth/me 回傳的使用者資訊
type UserResponse struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Role:     u.Role,
	}
}
