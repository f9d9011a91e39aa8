package models

import "time"

type Tenant struct {
	ID           string       `json:"id,omitempty"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	PropertyType PropertyType `json:"propertyType"`
	LeaseStart   time.Time    `json:"leaseStart"`
	LeaseEnd     time.Time    `json:"leaseEnd"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (t Tenant) EntityID() string { return t.ID }
