package user

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	FullName     string    `gorm:"column:full_name;not null"`
	Role         string    `gorm:"column:role;index;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	IsActive     bool      `gorm:"column:is_active;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
