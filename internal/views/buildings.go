package views

import "github.com/prudhvinik1/estatesync/internal/models"

func BuildingOptions(buildings []models.Building) []models.BuildingOption {
	out := make([]models.BuildingOption, 0, len(buildings))
	for _, b := range buildings {
		out = append(out, models.BuildingOption{Label: b.Name, Value: b.ID})
	}
	return out
}

func BuildingName(buildings []models.Building, id string) string {
	if id == "" {
		return "Not Assigned"
	}
	for _, b := range buildings {
		if b.ID == id {
			return b.Name
		}
	}
	return "Unknown Building"
}
