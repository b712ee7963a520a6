package lead

import "time"

type Lead struct {
	ID              string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	Name            string    `gorm:"column:name;not null"`
	ContactInfo     string    `gorm:"column:contact_info"`
	EstimatedAmount float64   `gorm:"column:estimated_amount;not null"`
	Notes           string    `gorm:"column:notes"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (Lead) TableName() string {
	return "leads"
}
