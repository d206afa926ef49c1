package recipes

import (
	"time"

	"philcali.me/cookbook/internal/data"
	"philcali.me/cookbook/internal/routes/util"
)

type Tag struct {
	Id    string `json:"tagId"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func NewTag(tag data.TagDTO) Tag {
	return Tag{
		Id:    tag.SK,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

type IngredientEntry struct {
	Id              string `json:"id"`
	Name            string `json:"name,omitempty"`
	MeasurementUnit string `json:"measurementUnit,omitempty"`
	Amount          int    `json:"amount"`
}

type RecipeInput struct {
	Name               *string            `json:"name"`
	Image              *string            `json:"image"`
	Text               *string            `json:"text"`
	CookingTimeMinutes *int               `json:"cookingTimeMinutes"`
	Tags               *[]string          `json:"tags"`
	Ingredients        *[]IngredientEntry `json:"ingredients"`
}

func (r *RecipeInput) ToData() data.RecipeInputDTO {
	var entries *[]data.EntryInputDTO
	if r.Ingredients != nil {
		entries = util.MapOnList(r.Ingredients, func(entry IngredientEntry) data.EntryInputDTO {
			return data.EntryInputDTO{
				Id:     entry.Id,
				Amount: entry.Amount,
			}
		})
	}
	return data.RecipeInputDTO{
		Name:               r.Name,
		Image:              r.Image,
		Text:               r.Text,
		CookingTimeMinutes: r.CookingTimeMinutes,
		TagIds:             r.Tags,
		Ingredients:        entries,
	}
}

type Recipe struct {
	Id                 string            `json:"recipeId"`
	Name               string            `json:"name"`
	Image              string            `json:"image"`
	Text               string            `json:"text"`
	Author             string            `json:"author"`
	CookingTimeMinutes *int              `json:"cookingTimeMinutes"`
	Tags               []Tag             `json:"tags"`
	Ingredients        []IngredientEntry `json:"ingredients"`
	IsFavorited        bool              `json:"isFavorited"`
	IsInShoppingCart   bool              `json:"isInShoppingCart"`
	CreateTime         time.Time         `json:"createTime"`
	UpdateTime         time.Time         `json:"updateTime"`
}

// ShortRecipe is the trimmed view returned by membership toggles.
type ShortRecipe struct {
	Id                 string `json:"recipeId"`
	Name               string `json:"name"`
	Image              string `json:"image"`
	CookingTimeMinutes *int   `json:"cookingTimeMinutes"`
}

func NewShortRecipe(recipe data.RecipeDTO) ShortRecipe {
	return ShortRecipe{
		Id:                 recipe.SK,
		Name:               recipe.Name,
		Image:              recipe.Image,
		CookingTimeMinutes: recipe.CookingTimeMinutes,
	}
}

func NewRecipe(recipe data.RecipeDTO, tags []Tag, entries []data.ResolvedEntryDTO, favorited bool, inCart bool) Recipe {
	return Recipe{
		Id:                 recipe.SK,
		Name:               recipe.Name,
		Image:              recipe.Image,
		Text:               recipe.Text,
		Author:             recipe.Author,
		CookingTimeMinutes: recipe.CookingTimeMinutes,
		Tags:               tags,
		IsFavorited:        favorited,
		IsInShoppingCart:   inCart,
		CreateTime:         recipe.CreateTime,
		UpdateTime:         recipe.UpdateTime,
		Ingredients: *util.MapOnList(&entries, func(entry data.ResolvedEntryDTO) IngredientEntry {
			return IngredientEntry{
				Id:              entry.IngredientId,
				Name:            entry.Name,
				MeasurementUnit: entry.MeasurementUnit,
				Amount:          entry.Amount,
			}
		}),
	}
}
