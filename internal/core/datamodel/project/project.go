package project

import "time"

type Project struct {
	ID                 string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	Title              string    `gorm:"column:title;not null"`
	Description        string    `gorm:"column:description"`
	ClientID           string    `gorm:"column:client_id;index;not null"`
	ClientName         string    `gorm:"column:client_name"`
	Deadline           time.Time `gorm:"column:deadline;not null"`
	AssignedEmployees  []string  `gorm:"column:assigned_employees;serializer:json"`
	Priority           string    `gorm:"column:priority;not null"`
	Status             string    `gorm:"column:status;index;not null"`
	ProgressPercentage int       `gorm:"column:progress_percentage;not null"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
