package notifications

// RecipePublishedInput describes a newly published recipe so follower
// delivery can filter on the author.
type RecipePublishedInput struct {
	Author     string
	RecipeId   string
	RecipeName string
}

type NotificationService interface {
	RecipePublished(input RecipePublishedInput) error
}
