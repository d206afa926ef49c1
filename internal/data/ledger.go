package data

// IngredientEntryDTO is a ledger row: the amount of one catalog
// ingredient in one recipe. The (recipe, ingredient) pair is unique by
// construction of the key.
type IngredientEntryDTO struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	Amount int    `dynamodbav:"amount"`
}

// EntryInputDTO is the caller-supplied shape of a ledger row.
type EntryInputDTO struct {
	Id     string `json:"id"`
	Amount int    `json:"amount"`
}

// ResolvedEntryDTO is a ledger row joined against the catalog for
// display and aggregation.
type ResolvedEntryDTO struct {
	IngredientId    string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurementUnit"`
	Amount          int    `json:"amount"`
}

type LedgerDataService interface {
	// EntriesFor returns the recipe's ledger joined against the catalog,
	// ordered by ingredient name.
	EntriesFor(recipeId string) ([]ResolvedEntryDTO, error)
	// ReplaceEntries swaps the recipe's entire ledger for the given set.
	// Callers supply the complete desired set, never a delta; prior rows
	// are discarded in the same transaction that writes the new ones.
	ReplaceEntries(recipeId string, entries []EntryInputDTO) error
}
