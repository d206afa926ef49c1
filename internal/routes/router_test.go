package routes_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"golang.org/x/exp/maps"
	"philcali.me/cookbook/internal/data"
	followData "philcali.me/cookbook/internal/dynamodb/follows"
	ingredientData "philcali.me/cookbook/internal/dynamodb/ingredients"
	ledgerData "philcali.me/cookbook/internal/dynamodb/ledger"
	membershipData "philcali.me/cookbook/internal/dynamodb/memberships"
	recipeData "philcali.me/cookbook/internal/dynamodb/recipes"
	tagData "philcali.me/cookbook/internal/dynamodb/tags"
	"philcali.me/cookbook/internal/dynamodb/token"
	"philcali.me/cookbook/internal/notifications"
	"philcali.me/cookbook/internal/routes"
	"philcali.me/cookbook/internal/routes/ingredients"
	"philcali.me/cookbook/internal/routes/recipes"
	"philcali.me/cookbook/internal/routes/subscriptions"
	"philcali.me/cookbook/internal/routes/tags"
	"philcali.me/cookbook/internal/shopping"
	"philcali.me/cookbook/internal/test"
)

func NewLocalServer(t *testing.T) *LocalServer {
	localServer := test.StartLocalServer(test.LOCAL_DDB_PORT+1, t)
	client, err := localServer.CreateLocalClient()
	if err != nil {
		t.Fatalf("Failed to create DDB client: %s", err)
	}
	tableName, err := test.CreateTable(client)
	if err != nil {
		t.Fatalf("Failed to create DDB table: %s", err)
	}
	t.Logf("Successfully created local resources running on %d", test.LOCAL_DDB_PORT)
	marshaler := token.NewGCM()
	config := data.DefaultValidationConfig()
	catalog := ingredientData.NewIngredientService(tableName, *client, marshaler)
	tagService := tagData.NewTagService(tableName, *client, marshaler)
	ledger := ledgerData.NewLedgerService(tableName, *client, catalog, config)
	memberships := membershipData.NewMembershipService(tableName, *client, marshaler)
	follows := followData.NewFollowService(tableName, *client, marshaler)
	published := &LocalNotifications{}
	router := routes.NewRouter(
		recipes.NewRoute(
			recipeData.NewRecipeService(tableName, *client, marshaler, ledger, tagService, config),
			tagService,
			ledger,
			memberships,
			shopping.NewService(memberships, ledger),
			published,
		),
		ingredients.NewRoute(catalog),
		tags.NewRoute(tagService),
		subscriptions.NewRoute(follows),
	)
	if _, err := catalog.BatchImportIngredients([]data.IngredientSeedDTO{
		{Id: "1", Name: "Flour", MeasurementUnit: "g"},
		{Id: "2", Name: "Sugar", MeasurementUnit: "g"},
		{Id: "3", Name: "Eggs", MeasurementUnit: "whole"},
	}); err != nil {
		t.Fatalf("Failed to seed the ingredient catalog: %s", err)
	}
	createdTag, err := tagService.CreateTag(data.TagInputDTO{
		Name:  aws.String("Breakfast"),
		Color: aws.String("#E26C2D"),
		Slug:  aws.String("breakfast"),
	})
	if err != nil {
		t.Fatalf("Failed to seed tags: %s", err)
	}
	return &LocalServer{
		Router:        router,
		TableName:     tableName,
		DynamoDB:      client,
		Notifications: published,
		TagId:         createdTag.SK,
		Username:      "nobody",
		Email:         "nobody@email.com",
	}
}

type LocalNotifications struct {
	Published []notifications.RecipePublishedInput
}

func (ln *LocalNotifications) RecipePublished(input notifications.RecipePublishedInput) error {
	ln.Published = append(ln.Published, input)
	return nil
}

type LocalServer struct {
	Router        *routes.Router
	DynamoDB      *dynamodb.Client
	Notifications *LocalNotifications
	TableName     string
	TagId         string
	Username      string
	Email         string
}

func (ls *LocalServer) UpdateIdentity(username, email string) {
	ls.Username = username
	ls.Email = email
}

func (ls *LocalServer) Request(t *testing.T, method string, path string, body []byte, out any, params map[string]string) events.APIGatewayV2HTTPResponse {
	request := events.APIGatewayV2HTTPRequest{}
	fd, err := os.ReadFile(filepath.Join("router_test", "template.json"))
	if err != nil {
		t.Fatalf("Failed to load request template: %s", err)
	}
	if err := json.Unmarshal(fd, &request); err != nil {
		t.Fatalf("Failed to deserialize request template: %s", err)
	}
	request.RawPath = path
	request.QueryStringParameters = params
	request.RequestContext.HTTP.Method = method
	request.RequestContext.HTTP.Path = path
	request.RequestContext.Authorizer.Lambda["jwt"] = map[string]interface{}{
		"username": string(ls.Username),
		"email":    string(ls.Email),
	}
	request.Body = string(body)
	response := ls.Router.Invoke(request, context.TODO())
	if out != nil {
		if err := json.Unmarshal([]byte(response.Body), &out); err != nil {
			t.Fatalf("Failed to deserialize payload for %s %s: %s", method, path, response.Body)
		}
	}
	return response
}

func (ls *LocalServer) Options(t *testing.T, path string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "OPTIONS", path, nil, nil, nil)
}

func (ls *LocalServer) Get(t *testing.T, out any, path string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "GET", path, nil, &out, nil)
}

func (ls *LocalServer) GetQuery(t *testing.T, out any, path string, params map[string]string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "GET", path, nil, &out, params)
}

func (ls *LocalServer) Post(t *testing.T, out any, path string, body any) events.APIGatewayV2HTTPResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to serialize input: %s", err)
	}
	return ls.Request(t, "POST", path, payload, &out, nil)
}

func (ls *LocalServer) Delete(t *testing.T, path string) events.APIGatewayV2HTTPResponse {
	return ls.Request(t, "DELETE", path, nil, nil, nil)
}

func (ls *LocalServer) Put(t *testing.T, out any, path string, body any) events.APIGatewayV2HTTPResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to serialize input: %s", err)
	}
	return ls.Request(t, "PUT", path, payload, &out, nil)
}

func (ls *LocalServer) CreateRecipe(t *testing.T, name string, entries []recipes.IngredientEntry) recipes.Recipe {
	var created recipes.Recipe
	response := ls.Post(t, &created, "/recipes", &recipes.RecipeInput{
		Name:               aws.String(name),
		Image:              aws.String("data:image/png;base64,iVBOR"),
		Text:               aws.String("Mix and bake."),
		CookingTimeMinutes: aws.Int(20),
		Tags:               &[]string{ls.TagId},
		Ingredients:        &entries,
	})
	if response.StatusCode != 200 {
		t.Fatalf("Failed to create recipe %s, got %d: %s", name, response.StatusCode, response.Body)
	}
	return created
}

func TestRouter(t *testing.T) {
	server := NewLocalServer(t)

	t.Run("IngredientCatalog", func(t *testing.T) {
		var results data.QueryResults[ingredients.Ingredient]
		list := server.Get(t, &results, "/ingredients")
		if list.StatusCode != 200 || len(results.Items) != 3 {
			t.Fatalf("Expected 3 catalog entries, got %d: %s", len(results.Items), list.Body)
		}
		filtered := server.GetQuery(t, &results, "/ingredients", map[string]string{"name": "fL"})
		if len(results.Items) != 1 || results.Items[0].Name != "Flour" {
			t.Fatalf("Expected the prefix filter to match Flour: %s", filtered.Body)
		}
		var flour ingredients.Ingredient
		get := server.Get(t, &flour, "/ingredients/1")
		if get.StatusCode != 200 || flour.MeasurementUnit != "g" {
			t.Fatalf("Failed to get a catalog entry: %s", get.Body)
		}
		missing := server.Get(t, nil, "/ingredients/999")
		if missing.StatusCode != 404 {
			t.Fatalf("Expected 404 for an unknown ingredient, got %d", missing.StatusCode)
		}
		firstPage := server.GetQuery(t, &results, "/ingredients", map[string]string{"limit": "2"})
		if len(results.Items) != 2 || len(results.NextToken) == 0 {
			t.Fatalf("Expected a truncated first page with a token: %s", firstPage.Body)
		}
		secondPage := server.GetQuery(t, &results, "/ingredients", map[string]string{
			"limit":     "2",
			"nextToken": string(results.NextToken),
		})
		if len(results.Items) != 1 {
			t.Fatalf("Expected the second page to hold the remainder: %s", secondPage.Body)
		}
	})

	t.Run("TagCatalog", func(t *testing.T) {
		var results data.QueryResults[tags.Tag]
		list := server.Get(t, &results, "/tags")
		if list.StatusCode != 200 || len(results.Items) != 1 {
			t.Fatalf("Expected the seeded tag, got: %s", list.Body)
		}
		var tag tags.Tag
		get := server.Get(t, &tag, "/tags/"+server.TagId)
		if get.StatusCode != 200 || tag.Slug != "breakfast" {
			t.Fatalf("Failed to get the seeded tag: %s", get.Body)
		}
		missing := server.Get(t, nil, "/tags/does-not-exist")
		if missing.StatusCode != 404 {
			t.Fatalf("Expected 404 for an unknown tag, got %d", missing.StatusCode)
		}
	})

	t.Run("RecipeWorkflow", func(t *testing.T) {
		created := server.CreateRecipe(t, "Pancakes", []recipes.IngredientEntry{
			{Id: "1", Amount: 100},
			{Id: "3", Amount: 2},
		})
		if len(created.Ingredients) != 2 || created.Ingredients[0].Name != "Eggs" {
			t.Fatalf("Expected resolved entries sorted by name: %v", created.Ingredients)
		}
		if len(created.Tags) != 1 || created.Tags[0].Slug != "breakfast" {
			t.Fatalf("Expected the resolved tag on the view: %v", created.Tags)
		}
		if len(server.Notifications.Published) != 1 || server.Notifications.Published[0].Author != "nobody" {
			t.Fatalf("Expected a publish notification: %v", server.Notifications.Published)
		}
		var fetched recipes.Recipe
		get := server.Get(t, &fetched, "/recipes/"+created.Id)
		if get.StatusCode != 200 || fetched.Name != "Pancakes" {
			t.Fatalf("Failed to get recipe %s: %s", created.Id, get.Body)
		}
		var results data.QueryResults[recipes.Recipe]
		list := server.Get(t, &results, "/recipes")
		if len(results.Items) != 1 || results.Items[0].Id != created.Id {
			t.Fatalf("List does not contain the created recipe: %s", list.Body)
		}
		var updatedRecipe recipes.Recipe
		updated := server.Put(t, &updatedRecipe, "/recipes/"+created.Id, &recipes.RecipeInput{
			Name: aws.String("Thin Pancakes"),
			Ingredients: &[]recipes.IngredientEntry{
				{Id: "1", Amount: 120},
			},
		})
		if updated.StatusCode != 200 {
			t.Fatalf("Update response %d: %s", updated.StatusCode, updated.Body)
		}
		if updatedRecipe.Name != "Thin Pancakes" || updatedRecipe.Text != "Mix and bake." {
			t.Fatalf("Expected a partial update to retain fields: %s", updated.Body)
		}
		if len(updatedRecipe.Ingredients) != 1 || updatedRecipe.Ingredients[0].Amount != 120 {
			t.Fatalf("Expected the replaced entry set: %v", updatedRecipe.Ingredients)
		}
		deleted := server.Delete(t, "/recipes/"+created.Id)
		if deleted.StatusCode != 204 {
			t.Fatalf("Response on delete %d: %s", deleted.StatusCode, deleted.Body)
		}
		gone := server.Get(t, nil, "/recipes/"+created.Id)
		if gone.StatusCode != 404 {
			t.Fatalf("Expected 404 after delete, got %d: %s", gone.StatusCode, gone.Body)
		}
	})

	t.Run("RepeatedTagsCollapse", func(t *testing.T) {
		var created recipes.Recipe
		response := server.Post(t, &created, "/recipes", &recipes.RecipeInput{
			Name:               aws.String("Crepes"),
			Image:              aws.String("data:image/png;base64,iVBOR"),
			Text:               aws.String("Mix and fry."),
			CookingTimeMinutes: aws.Int(15),
			Tags:               &[]string{server.TagId, server.TagId},
			Ingredients:        &[]recipes.IngredientEntry{{Id: "1", Amount: 80}},
		})
		if response.StatusCode != 200 {
			t.Fatalf("Expected repeated tag ids to collapse, got %d: %s", response.StatusCode, response.Body)
		}
		if len(created.Tags) != 1 || created.Tags[0].Id != server.TagId {
			t.Fatalf("Expected a single resolved tag: %v", created.Tags)
		}
		server.Delete(t, "/recipes/"+created.Id)
	})

	t.Run("RecipeValidation", func(t *testing.T) {
		input := func(entries *[]recipes.IngredientEntry, tagIds *[]string, cookingTime int) *recipes.RecipeInput {
			return &recipes.RecipeInput{
				Name:               aws.String("Broken"),
				Image:              aws.String("data:image/png;base64,iVBOR"),
				Text:               aws.String("Does not matter."),
				CookingTimeMinutes: aws.Int(cookingTime),
				Tags:               tagIds,
				Ingredients:        entries,
			}
		}
		tagIds := []string{server.TagId}
		noEntries := server.Post(t, nil, "/recipes", input(&[]recipes.IngredientEntry{}, &tagIds, 10))
		if noEntries.StatusCode != 400 {
			t.Fatalf("Expected 400 on an empty entry list, got %d: %s", noEntries.StatusCode, noEntries.Body)
		}
		duplicates := server.Post(t, nil, "/recipes", input(&[]recipes.IngredientEntry{
			{Id: "1", Amount: 10},
			{Id: "1", Amount: 20},
		}, &tagIds, 10))
		if duplicates.StatusCode != 400 {
			t.Fatalf("Expected 400 on duplicate entries, got %d: %s", duplicates.StatusCode, duplicates.Body)
		}
		unknown := server.Post(t, nil, "/recipes", input(&[]recipes.IngredientEntry{
			{Id: "999", Amount: 10},
		}, &tagIds, 10))
		if unknown.StatusCode != 404 {
			t.Fatalf("Expected 404 on an unknown catalog id, got %d: %s", unknown.StatusCode, unknown.Body)
		}
		badAmount := server.Post(t, nil, "/recipes", input(&[]recipes.IngredientEntry{
			{Id: "1", Amount: 0},
		}, &tagIds, 10))
		if badAmount.StatusCode != 400 {
			t.Fatalf("Expected 400 on a zero amount, got %d: %s", badAmount.StatusCode, badAmount.Body)
		}
		badTime := server.Post(t, nil, "/recipes", input(&[]recipes.IngredientEntry{
			{Id: "1", Amount: 10},
		}, &tagIds, 0))
		if badTime.StatusCode != 400 {
			t.Fatalf("Expected 400 on a zero cooking time, got %d: %s", badTime.StatusCode, badTime.Body)
		}
		noTags := server.Post(t, nil, "/recipes", input(&[]recipes.IngredientEntry{
			{Id: "1", Amount: 10},
		}, &[]string{}, 10))
		if noTags.StatusCode != 400 {
			t.Fatalf("Expected 400 on an empty tag list, got %d: %s", noTags.StatusCode, noTags.Body)
		}
		unknownTag := server.Post(t, nil, "/recipes", input(&[]recipes.IngredientEntry{
			{Id: "1", Amount: 10},
		}, &[]string{"missing-tag"}, 10))
		if unknownTag.StatusCode != 404 {
			t.Fatalf("Expected 404 on an unknown tag, got %d: %s", unknownTag.StatusCode, unknownTag.Body)
		}
		notOwned := server.Put(t, nil, "/recipes/not-existent", &recipes.RecipeInput{
			Name: aws.String("Non-Existence"),
		})
		if notOwned.StatusCode != 404 {
			t.Fatalf("Expected 404 on a missing recipe, got %d: %s", notOwned.StatusCode, notOwned.Body)
		}
	})

	t.Run("FavoriteWorkflow", func(t *testing.T) {
		server.UpdateIdentity("taylor", "taylor@email.com")
		created := server.CreateRecipe(t, "Shortbread", []recipes.IngredientEntry{
			{Id: "1", Amount: 200},
		})
		var short recipes.ShortRecipe
		favorite := server.Post(t, &short, "/recipes/"+created.Id+"/favorite", nil)
		if favorite.StatusCode != 201 || short.Id != created.Id {
			t.Fatalf("Failed to favorite, got %d: %s", favorite.StatusCode, favorite.Body)
		}
		duplicate := server.Post(t, nil, "/recipes/"+created.Id+"/favorite", nil)
		if duplicate.StatusCode != 409 {
			t.Fatalf("Expected 409 on a double favorite, got %d: %s", duplicate.StatusCode, duplicate.Body)
		}
		var view recipes.Recipe
		server.Get(t, &view, "/recipes/"+created.Id)
		if !view.IsFavorited {
			t.Fatalf("Expected the view to mark the favorite: %v", view)
		}
		removed := server.Delete(t, "/recipes/"+created.Id+"/favorite")
		if removed.StatusCode != 204 {
			t.Fatalf("Failed to remove the favorite, got %d", removed.StatusCode)
		}
		absent := server.Delete(t, "/recipes/"+created.Id+"/favorite")
		if absent.StatusCode != 400 {
			t.Fatalf("Expected 400 removing an absent favorite, got %d: %s", absent.StatusCode, absent.Body)
		}
		missing := server.Post(t, nil, "/recipes/not-existent/favorite", nil)
		if missing.StatusCode != 404 {
			t.Fatalf("Expected 404 favoriting a missing recipe, got %d", missing.StatusCode)
		}
	})

	t.Run("ShoppingCartWorkflow", func(t *testing.T) {
		server.UpdateIdentity("morgan", "morgan@email.com")
		pancakes := server.CreateRecipe(t, "Pancakes", []recipes.IngredientEntry{
			{Id: "1", Amount: 100},
			{Id: "2", Amount: 25},
		})
		bread := server.CreateRecipe(t, "Bread", []recipes.IngredientEntry{
			{Id: "1", Amount: 50},
		})
		for _, recipe := range []recipes.Recipe{pancakes, bread} {
			added := server.Post(t, nil, "/recipes/"+recipe.Id+"/shopping-cart", nil)
			if added.StatusCode != 201 {
				t.Fatalf("Failed to add %s to the cart, got %d: %s", recipe.Name, added.StatusCode, added.Body)
			}
		}
		download := server.Request(t, "GET", "/shopping-cart/download", nil, nil, nil)
		if download.StatusCode != 200 {
			t.Fatalf("Failed to download the list, got %d: %s", download.StatusCode, download.Body)
		}
		expected := "Shopping list:\n\n1) Flour - 150 g\n2) Sugar - 25 g\n"
		if download.Body != expected {
			t.Fatalf("Expected %q, got %q", expected, download.Body)
		}
		if download.Headers["Content-Disposition"] != "attachment; filename=shopping_list.txt" {
			t.Fatalf("Expected an attachment disposition: %v", download.Headers)
		}
		removed := server.Delete(t, "/recipes/"+bread.Id+"/shopping-cart")
		if removed.StatusCode != 204 {
			t.Fatalf("Failed to remove from the cart, got %d", removed.StatusCode)
		}
		absent := server.Delete(t, "/recipes/"+bread.Id+"/shopping-cart")
		if absent.StatusCode != 400 {
			t.Fatalf("Expected 400 removing an absent cart entry, got %d: %s", absent.StatusCode, absent.Body)
		}
		download = server.Request(t, "GET", "/shopping-cart/download", nil, nil, nil)
		expected = "Shopping list:\n\n1) Flour - 100 g\n2) Sugar - 25 g\n"
		if download.Body != expected {
			t.Fatalf("Expected %q after removal, got %q", expected, download.Body)
		}
		server.Delete(t, "/recipes/"+pancakes.Id+"/shopping-cart")
		empty := server.Request(t, "GET", "/shopping-cart/download", nil, nil, nil)
		if empty.StatusCode != 400 {
			t.Fatalf("Expected 400 on an empty cart, got %d: %s", empty.StatusCode, empty.Body)
		}
	})

	t.Run("RecipeFiltering", func(t *testing.T) {
		server.UpdateIdentity("jamie", "jamie@email.com")
		soup := server.CreateRecipe(t, "Soup", []recipes.IngredientEntry{
			{Id: "1", Amount: 10},
		})
		salad := server.CreateRecipe(t, "Salad", []recipes.IngredientEntry{
			{Id: "2", Amount: 5},
		})
		favorite := server.Post(t, nil, "/recipes/"+soup.Id+"/favorite", nil)
		if favorite.StatusCode != 201 {
			t.Fatalf("Failed to favorite, got %d: %s", favorite.StatusCode, favorite.Body)
		}
		carted := server.Post(t, nil, "/recipes/"+salad.Id+"/shopping-cart", nil)
		if carted.StatusCode != 201 {
			t.Fatalf("Failed to add to the cart, got %d: %s", carted.StatusCode, carted.Body)
		}
		var results data.QueryResults[recipes.Recipe]
		byAuthor := server.GetQuery(t, &results, "/recipes", map[string]string{"author": "jamie"})
		if byAuthor.StatusCode != 200 || len(results.Items) != 2 {
			t.Fatalf("Expected both of jamie's recipes: %s", byAuthor.Body)
		}
		favorited := server.GetQuery(t, &results, "/recipes", map[string]string{"isFavorited": "1"})
		if len(results.Items) != 1 || results.Items[0].Id != soup.Id {
			t.Fatalf("Expected only the favorited recipe: %s", favorited.Body)
		}
		inCart := server.GetQuery(t, &results, "/recipes", map[string]string{"isInShoppingCart": "true"})
		if len(results.Items) != 1 || results.Items[0].Id != salad.Id {
			t.Fatalf("Expected only the carted recipe: %s", inCart.Body)
		}
		bySlug := server.GetQuery(t, &results, "/recipes", map[string]string{
			"tag":    "breakfast",
			"author": "jamie",
		})
		if len(results.Items) != 2 {
			t.Fatalf("Expected the slug filter to match both: %s", bySlug.Body)
		}
		noSlug := server.GetQuery(t, &results, "/recipes", map[string]string{"tag": "dinner"})
		if len(results.Items) != 0 {
			t.Fatalf("Expected no matches for an unused slug: %s", noSlug.Body)
		}
	})

	t.Run("SubscriptionWorkflow", func(t *testing.T) {
		server.UpdateIdentity("sam", "sam@email.com")
		var subscription subscriptions.Subscription
		created := server.Post(t, &subscription, "/authors/alex/subscription", nil)
		if created.StatusCode != 201 || subscription.AuthorId != "alex" {
			t.Fatalf("Failed to subscribe, got %d: %s", created.StatusCode, created.Body)
		}
		duplicate := server.Post(t, nil, "/authors/alex/subscription", nil)
		if duplicate.StatusCode != 409 {
			t.Fatalf("Expected 409 on a duplicate subscription, got %d: %s", duplicate.StatusCode, duplicate.Body)
		}
		self := server.Post(t, nil, "/authors/sam/subscription", nil)
		if self.StatusCode != 400 {
			t.Fatalf("Expected 400 on a self subscription, got %d: %s", self.StatusCode, self.Body)
		}
		var status subscriptions.SubscriptionStatus
		active := server.Get(t, &status, "/authors/alex/subscription")
		if active.StatusCode != 200 || !status.IsSubscribed || status.AuthorId != "alex" {
			t.Fatalf("Expected an active subscription status: %s", active.Body)
		}
		var results data.QueryResults[subscriptions.Subscription]
		list := server.Get(t, &results, "/subscriptions")
		if list.StatusCode != 200 || len(results.Items) != 1 || results.Items[0].AuthorId != "alex" {
			t.Fatalf("Expected a single subscription for alex: %s", list.Body)
		}
		removed := server.Delete(t, "/authors/alex/subscription")
		if removed.StatusCode != 204 {
			t.Fatalf("Failed to unsubscribe, got %d", removed.StatusCode)
		}
		inactive := server.Get(t, &status, "/authors/alex/subscription")
		if inactive.StatusCode != 200 || status.IsSubscribed {
			t.Fatalf("Expected an inactive subscription status: %s", inactive.Body)
		}
		absent := server.Delete(t, "/authors/alex/subscription")
		if absent.StatusCode != 404 {
			t.Fatalf("Expected 404 removing an absent subscription, got %d: %s", absent.StatusCode, absent.Body)
		}
	})

	t.Run("CorsPreflight", func(t *testing.T) {
		preflight := server.Options(t, "/recipes")
		if preflight.StatusCode != 200 {
			t.Fatalf("Received a %d status code, expected 200", preflight.StatusCode)
		}
		if preflight.Body != "" {
			t.Fatalf("Received a response body for OPTIONS: %s", preflight.Body)
		}
		expected := map[string]string{
			"content-length":               "0",
			"access-control-allow-headers": "Content-Type, Content-Length, Authorization",
			"access-control-allow-methods": "GET, PUT, POST, DELETE",
			"access-control-allow-origin":  "*",
		}
		if !maps.Equal(preflight.Headers, expected) {
			t.Fatalf("Headers from preflight %v, do not match expected %v", preflight.Headers, expected)
		}
	})
}
