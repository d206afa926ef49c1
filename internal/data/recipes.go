package data

import (
	"time"

	"philcali.me/cookbook/internal/exceptions"
)

type RecipeDTO struct {
	PK                 string    `dynamodbav:"PK"`
	SK                 string    `dynamodbav:"SK"`
	Name               string    `dynamodbav:"name"`
	Image              string    `dynamodbav:"image"`
	Text               string    `dynamodbav:"text"`
	Author             string    `dynamodbav:"author"`
	CookingTimeMinutes *int      `dynamodbav:"cookingTimeMinutes"`
	TagIds             []string  `dynamodbav:"tagIds"`
	UpdateToken        string    `dynamodbav:"updateToken"`
	CreateTime         time.Time `dynamodbav:"createTime"`
	UpdateTime         time.Time `dynamodbav:"updateTime"`
}

// RecipeInputDTO carries a create or update payload. Nil fields retain
// prior values on update; a present Tags or Ingredients field replaces
// the whole corresponding collection, never merges.
type RecipeInputDTO struct {
	Name               *string          `dynamodbav:"name"`
	Image              *string          `dynamodbav:"image"`
	Text               *string          `dynamodbav:"text"`
	CookingTimeMinutes *int             `dynamodbav:"cookingTimeMinutes"`
	TagIds             *[]string        `dynamodbav:"tagIds"`
	Ingredients        *[]EntryInputDTO `dynamodbav:"-"`
}

type RecipeDataService interface {
	GetRecipe(recipeId string) (RecipeDTO, error)
	ListRecipes(params QueryParams) (QueryResults[RecipeDTO], error)
	CreateRecipe(author string, input RecipeInputDTO) (RecipeDTO, error)
	UpdateRecipe(recipeId string, input RecipeInputDTO) (RecipeDTO, error)
	DeleteRecipe(recipeId string) error
}

// MaxIngredientEntries keeps a full ledger replace inside a single
// TransactWriteItems call: the worst case of one recipe put, one
// delete per dropped entry and one put per new entry must stay within
// the 100 item transaction cap.
const MaxIngredientEntries = 49

// ValidationConfig holds the business minimums for authoring. The
// ingredient amount floor is deliberately configurable rather than a
// literal constant.
type ValidationConfig struct {
	MinIngredientAmount   int
	MinCookingTimeMinutes int
}

func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MinIngredientAmount:   1,
		MinCookingTimeMinutes: 1,
	}
}

// ValidateEntryShape rejects an empty ingredient list, an oversized
// one and repeated ingredient ids. Runs before catalog resolution.
func (vc ValidationConfig) ValidateEntryShape(entries []EntryInputDTO) error {
	if len(entries) == 0 {
		return exceptions.InvalidInput("Add at least one ingredient.")
	}
	if len(entries) > MaxIngredientEntries {
		return exceptions.InvalidInput("Recipes cannot list more than 49 ingredients.")
	}
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.Id] {
			return exceptions.InvalidInput("Ingredients in a recipe cannot repeat.")
		}
		seen[entry.Id] = true
	}
	return nil
}

// ValidateEntryAmounts rejects amounts below the configured floor.
// Runs after catalog resolution.
func (vc ValidationConfig) ValidateEntryAmounts(entries []EntryInputDTO) error {
	for _, entry := range entries {
		if entry.Amount < vc.MinIngredientAmount {
			return exceptions.InvalidInput("Ingredient amounts cannot be less than the minimum quantity.")
		}
	}
	return nil
}

func (vc ValidationConfig) ValidateCookingTime(minutes *int) error {
	if minutes != nil && *minutes < vc.MinCookingTimeMinutes {
		return exceptions.InvalidInput("Cooking time cannot be less than a minute.")
	}
	return nil
}
