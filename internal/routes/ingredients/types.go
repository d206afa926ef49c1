package ingredients

import (
	"philcali.me/cookbook/internal/data"
)

type Ingredient struct {
	Id              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurementUnit"`
}

func NewIngredient(entry data.IngredientDTO) Ingredient {
	return Ingredient{
		Id:              entry.SK,
		Name:            entry.Name,
		MeasurementUnit: entry.MeasurementUnit,
	}
}
