package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/cookbook/internal/data"
	"philcali.me/cookbook/internal/exceptions"
	"philcali.me/cookbook/internal/notifications"
	"philcali.me/cookbook/internal/routes"
	"philcali.me/cookbook/internal/routes/util"
	"philcali.me/cookbook/internal/shopping"
)

type RecipeService struct {
	data          data.RecipeDataService
	tags          data.TagDataService
	ledger        data.LedgerDataService
	memberships   data.MembershipDataService
	shopping      *shopping.Service
	notifications notifications.NotificationService
}

func NewRoute(recipeData data.RecipeDataService, tagData data.TagDataService, ledgerData data.LedgerDataService, membershipData data.MembershipDataService, shoppingService *shopping.Service, notificationService notifications.NotificationService) routes.Service {
	return &RecipeService{
		data:          recipeData,
		tags:          tagData,
		ledger:        ledgerData,
		memberships:   membershipData,
		shopping:      shoppingService,
		notifications: notificationService,
	}
}

func (rs *RecipeService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/recipes":                            util.AuthorizedRoute(rs.ListRecipes),
		"GET:/recipes/:recipeId":                  util.AuthorizedRoute(rs.GetRecipe),
		"POST:/recipes":                           util.AuthorizedRoute(rs.CreateRecipe),
		"PUT:/recipes/:recipeId":                  util.AuthorizedRoute(rs.UpdateRecipe),
		"DELETE:/recipes/:recipeId":               util.AuthorizedRoute(rs.DeleteRecipe),
		"POST:/recipes/:recipeId/favorite":        util.AuthorizedRoute(rs.AddFavorite),
		"DELETE:/recipes/:recipeId/favorite":      util.AuthorizedRoute(rs.RemoveFavorite),
		"POST:/recipes/:recipeId/shopping-cart":   util.AuthorizedRoute(rs.AddToCart),
		"DELETE:/recipes/:recipeId/shopping-cart": util.AuthorizedRoute(rs.RemoveFromCart),
		"GET:/shopping-cart/download":             util.AuthorizedRoute(rs.DownloadShoppingList),
	}
}

func (rs *RecipeService) membershipSet(username string, kind data.MembershipKind) (map[string]bool, error) {
	set := make(map[string]bool)
	params := data.QueryParams{}
	for {
		page, err := rs.memberships.ListMemberships(username, kind, params)
		if err != nil {
			return nil, err
		}
		for _, membership := range page.Items {
			set[membership.RecipeId()] = true
		}
		if len(page.NextToken) == 0 {
			return set, nil
		}
		params.NextToken = page.NextToken
	}
}

func (rs *RecipeService) resolveTagViews(ids []string) ([]Tag, error) {
	resolved, err := rs.tags.BatchGetTags(ids)
	if err != nil {
		return nil, err
	}
	views := make([]Tag, 0, len(ids))
	for _, id := range ids {
		if tag, ok := resolved[id]; ok {
			views = append(views, NewTag(tag))
		}
	}
	return views, nil
}

func (rs *RecipeService) buildView(username string, recipe data.RecipeDTO) (Recipe, error) {
	tags, err := rs.resolveTagViews(recipe.TagIds)
	if err != nil {
		return Recipe{}, err
	}
	entries, err := rs.ledger.EntriesFor(recipe.SK)
	if err != nil {
		return Recipe{}, err
	}
	favorited, err := rs.memberships.ContainsMembership(username, recipe.SK, data.FavoriteKind)
	if err != nil {
		return Recipe{}, err
	}
	inCart, err := rs.memberships.ContainsMembership(username, recipe.SK, data.CartKind)
	if err != nil {
		return Recipe{}, err
	}
	return NewRecipe(recipe, tags, entries, favorited, inCart), nil
}

func _flagParam(value string) bool {
	return value == "1" || strings.EqualFold(value, "true")
}

// matchesFilters applies the optional listing filters: author exact
// match, tag slug membership, and the caller's favorite and cart
// flags. Filters narrow the fetched page, so a filtered page can come
// back short while still carrying a next token.
func matchesFilters(view Recipe, params map[string]string) bool {
	if author, ok := params["author"]; ok && view.Author != author {
		return false
	}
	if slug, ok := params["tag"]; ok {
		tagged := false
		for _, tag := range view.Tags {
			if tag.Slug == slug {
				tagged = true
				break
			}
		}
		if !tagged {
			return false
		}
	}
	if flag, ok := params["isFavorited"]; ok && _flagParam(flag) && !view.IsFavorited {
		return false
	}
	if flag, ok := params["isInShoppingCart"]; ok && _flagParam(flag) && !view.IsInShoppingCart {
		return false
	}
	return true
}

func (rs *RecipeService) ListRecipes(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.ParseQueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	username := util.Username(ctx)
	items, err := rs.data.ListRecipes(params)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	favorites, err := rs.membershipSet(username, data.FavoriteKind)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	cart, err := rs.membershipSet(username, data.CartKind)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	views := make([]Recipe, 0, len(items.Items))
	for _, recipe := range items.Items {
		tags, err := rs.resolveTagViews(recipe.TagIds)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
		entries, err := rs.ledger.EntriesFor(recipe.SK)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
		view := NewRecipe(recipe, tags, entries, favorites[recipe.SK], cart[recipe.SK])
		if matchesFilters(view, event.QueryStringParameters) {
			views = append(views, view)
		}
	}
	results := data.QueryResults[Recipe]{
		Items:     views,
		NextToken: items.NextToken,
	}
	return util.SerializeResponseOK(func(r data.QueryResults[Recipe]) data.QueryResults[Recipe] { return r }, results, nil)
}

func (rs *RecipeService) GetRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	recipe, err := rs.data.GetRecipe(util.RequestParam(ctx, "recipeId"))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	view, err := rs.buildView(util.Username(ctx), recipe)
	return util.SerializeResponseOK(func(r Recipe) Recipe { return r }, view, err)
}

func (rs *RecipeService) CreateRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := RecipeInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	username := util.Username(ctx)
	created, err := rs.data.CreateRecipe(username, input.ToData())
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err := rs.notifications.RecipePublished(notifications.RecipePublishedInput{
		Author:     username,
		RecipeId:   created.SK,
		RecipeName: created.Name,
	}); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer(err.Error())
	}
	view, err := rs.buildView(username, created)
	return util.SerializeResponseOK(func(r Recipe) Recipe { return r }, view, err)
}

// ownedRecipe fetches the recipe and hides it from non-authors, so
// modifying someone else's recipe reads the same as modifying one that
// does not exist.
func (rs *RecipeService) ownedRecipe(username string, recipeId string) (data.RecipeDTO, error) {
	recipe, err := rs.data.GetRecipe(recipeId)
	if err != nil {
		return recipe, err
	}
	if recipe.Author != username {
		return recipe, exceptions.NotFound("recipe", recipeId)
	}
	return recipe, nil
}

func (rs *RecipeService) UpdateRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := RecipeInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	username := util.Username(ctx)
	recipeId := util.RequestParam(ctx, "recipeId")
	if _, err := rs.ownedRecipe(username, recipeId); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	updated, err := rs.data.UpdateRecipe(recipeId, input.ToData())
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	view, err := rs.buildView(username, updated)
	return util.SerializeResponseOK(func(r Recipe) Recipe { return r }, view, err)
}

func (rs *RecipeService) DeleteRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	username := util.Username(ctx)
	recipeId := util.RequestParam(ctx, "recipeId")
	if _, err := rs.ownedRecipe(username, recipeId); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.SerializeResponseNoContent(rs.data.DeleteRecipe(recipeId))
}

func (rs *RecipeService) addMembership(ctx context.Context, kind data.MembershipKind) (events.APIGatewayV2HTTPResponse, error) {
	username := util.Username(ctx)
	recipeId := util.RequestParam(ctx, "recipeId")
	recipe, err := rs.data.GetRecipe(recipeId)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if _, err := rs.memberships.AddMembership(username, recipeId, kind); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.SerializeResponse(NewShortRecipe, recipe, nil, 201)
}

// removeMembership reports an absent pair as a client mistake rather
// than a missing resource: removing what was never added is a bad
// request at this boundary.
func (rs *RecipeService) removeMembership(ctx context.Context, kind data.MembershipKind, message string) (events.APIGatewayV2HTTPResponse, error) {
	username := util.Username(ctx)
	recipeId := util.RequestParam(ctx, "recipeId")
	if err := rs.memberships.RemoveMembership(username, recipeId, kind); err != nil {
		var nfe *exceptions.NotFoundError
		if errors.As(err, &nfe) {
			return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(message)
		}
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.SerializeResponseNoContent(nil)
}

func (rs *RecipeService) AddFavorite(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return rs.addMembership(ctx, data.FavoriteKind)
}

func (rs *RecipeService) RemoveFavorite(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return rs.removeMembership(ctx, data.FavoriteKind, "Recipe is missing from favorites or was already removed.")
}

func (rs *RecipeService) AddToCart(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return rs.addMembership(ctx, data.CartKind)
}

func (rs *RecipeService) RemoveFromCart(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return rs.removeMembership(ctx, data.CartKind, "Recipe is missing from the shopping cart or was already removed.")
}

func (rs *RecipeService) DownloadShoppingList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	lines, err := rs.shopping.BuildShoppingList(util.Username(ctx))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.SerializeResponseAttachment(shopping.Render(lines), "shopping_list.txt", nil)
}
