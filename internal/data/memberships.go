package data

import "time"

// MembershipKind selects which user-recipe relation a membership row
// belongs to. Favorites and the shopping cart share one schema and one
// set of semantics; only the kind differs.
type MembershipKind string

const (
	FavoriteKind MembershipKind = "Favorite"
	CartKind     MembershipKind = "Cart"
)

type MembershipDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

// RecipeId is the range key of a membership row.
func (m MembershipDTO) RecipeId() string {
	return m.SK
}

type MembershipDataService interface {
	// AddMembership fails with Conflict when the pair already exists
	// for the kind.
	AddMembership(username string, recipeId string, kind MembershipKind) (MembershipDTO, error)
	// RemoveMembership fails with NotFound when the pair is absent.
	RemoveMembership(username string, recipeId string, kind MembershipKind) error
	ContainsMembership(username string, recipeId string, kind MembershipKind) (bool, error)
	ListMemberships(username string, kind MembershipKind, params QueryParams) (QueryResults[MembershipDTO], error)
}
