package models

import "time"

type Building struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	TotalUnits int       `json:"totalUnits"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (b Building) EntityID() string { return b.ID }

// BuildingOption is a label/value pair for building pickers.
type BuildingOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
