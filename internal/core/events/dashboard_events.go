package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeProjectCreated = "project.created"
	EventTypeProjectUpdated = "project.updated"
	EventTypeLeadCreated    = "lead.created"
	EventTypeLeadUpdated    = "lead.updated"
	EventTypeLeadDeleted    = "lead.deleted"
	EventTypeUserCreated    = "user.created"
)

// ProjectEventTypes and LeadEventTypes group the event types that invalidate a
// cached collection.
var (
	ProjectEventTypes = []string{EventTypeProjectCreated, EventTypeProjectUpdated}
	LeadEventTypes    = []string{EventTypeLeadCreated, EventTypeLeadUpdated, EventTypeLeadDeleted}
	UserEventTypes    = []string{EventTypeUserCreated}
)

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type ProjectChangedEvent struct {
	BaseEvent
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
}

func NewProjectCreatedEvent(projectID, title, status string) *ProjectChangedEvent {
	return newProjectEvent(EventTypeProjectCreated, projectID, title, status)
}

func NewProjectUpdatedEvent(projectID, title, status string) *ProjectChangedEvent {
	return newProjectEvent(EventTypeProjectUpdated, projectID, title, status)
}

func newProjectEvent(eventType, projectID, title, status string) *ProjectChangedEvent {
	return &ProjectChangedEvent{
		BaseEvent: newBase(eventType, map[string]interface{}{
			"project_id": projectID,
			"title":      title,
			"status":     status,
		}),
		ProjectID: projectID,
		Title:     title,
		Status:    status,
	}
}

type LeadChangedEvent struct {
	BaseEvent
	LeadID string `json:"lead_id"`
	Name   string `json:"name"`
}

func NewLeadCreatedEvent(leadID, name string) *LeadChangedEvent {
	return newLeadEvent(EventTypeLeadCreated, leadID, name)
}

func NewLeadUpdatedEvent(leadID, name string) *LeadChangedEvent {
	return newLeadEvent(EventTypeLeadUpdated, leadID, name)
}

func NewLeadDeletedEvent(leadID string) *LeadChangedEvent {
	return newLeadEvent(EventTypeLeadDeleted, leadID, "")
}

func newLeadEvent(eventType, leadID, name string) *LeadChangedEvent {
	return &LeadChangedEvent{
		BaseEvent: newBase(eventType, map[string]interface{}{
			"lead_id": leadID,
			"name":    name,
		}),
		LeadID: leadID,
		Name:   name,
	}
}

type UserCreatedEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func NewUserCreatedEvent(userID, email, role string) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseEvent: newBase(EventTypeUserCreated, map[string]interface{}{
			"user_id": userID,
			"email":   email,
			"role":    role,
		}),
		UserID: userID,
		Email:  email,
		Role:   role,
	}
}
