package models

import (
	"time"

	"github.com/google/uuid"
)

// User 表示系統中的用戶
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Surname   string    `gorm:"type:varchar(100);not null" json:"surname"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // 密碼雜湊，json 序列化時會被忽略
	Age       int       `gorm:"not null" json:"age"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
