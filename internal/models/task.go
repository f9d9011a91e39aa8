package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is a to-do item. Due is a calendar date (YYYY-MM-DD).
type Task struct {
	ID         string    `json:"id,omitempty"`
	Title      string    `json:"title"`
	Due        string    `json:"due"`
	Done       bool      `json:"done"`
	Priority   Priority  `json:"priority"`
	PropertyID string    `json:"propertyId,omitempty"`
	TenantID   string    `json:"tenantId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (t Task) EntityID() string { return t.ID }
