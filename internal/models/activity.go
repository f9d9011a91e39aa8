package models

import "time"

// Activity is an entry of the activity feed.
type Activity struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	PropertyID  string    `json:"propertyId,omitempty"`
	TenantID    string    `json:"tenantId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (a Activity) EntityID() string { return a.ID }
