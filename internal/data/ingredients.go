package data

import "time"

// IngredientDTO is a row of the ingredient catalog. Catalog rows are
// immutable reference data, bulk-loaded at deployment time.
type IngredientDTO struct {
	PK              string    `dynamodbav:"PK"`
	SK              string    `dynamodbav:"SK"`
	Name            string    `dynamodbav:"name"`
	MeasurementUnit string    `dynamodbav:"measurementUnit"`
	SearchName      string    `dynamodbav:"searchName"`
	CreateTime      time.Time `dynamodbav:"createTime"`
	UpdateTime      time.Time `dynamodbav:"updateTime"`
}

// IngredientSeedDTO is a catalog row as it appears in the seed source,
// with the id assigned externally.
type IngredientSeedDTO struct {
	Id              string
	Name            string
	MeasurementUnit string
}

type IngredientDataService interface {
	GetIngredient(ingredientId string) (IngredientDTO, error)
	// BatchGetIngredients resolves catalog rows by id. Ids absent from
	// the catalog are simply absent from the result map.
	BatchGetIngredients(ids []string) (map[string]IngredientDTO, error)
	// ListIngredients pages through the catalog, optionally filtered by
	// a case-insensitive name prefix.
	ListIngredients(params QueryParams, namePrefix string) (QueryResults[IngredientDTO], error)
	BatchImportIngredients(rows []IngredientSeedDTO) (int, error)
}
