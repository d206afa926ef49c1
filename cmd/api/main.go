package main

import (
	"context"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"philcali.me/cookbook/internal/data"
	followData "philcali.me/cookbook/internal/dynamodb/follows"
	ingredientData "philcali.me/cookbook/internal/dynamodb/ingredients"
	ledgerData "philcali.me/cookbook/internal/dynamodb/ledger"
	membershipData "philcali.me/cookbook/internal/dynamodb/memberships"
	recipeData "philcali.me/cookbook/internal/dynamodb/recipes"
	tagData "philcali.me/cookbook/internal/dynamodb/tags"
	"philcali.me/cookbook/internal/dynamodb/token"
	"philcali.me/cookbook/internal/routes"
	"philcali.me/cookbook/internal/routes/ingredients"
	"philcali.me/cookbook/internal/routes/recipes"
	"philcali.me/cookbook/internal/routes/subscriptions"
	"philcali.me/cookbook/internal/routes/tags"
	"philcali.me/cookbook/internal/shopping"
	"philcali.me/cookbook/internal/sns/services"
)

type App struct {
	Router routes.Router
}

func validationConfig() data.ValidationConfig {
	vc := data.DefaultValidationConfig()
	if raw, ok := os.LookupEnv("INGREDIENT_AMOUNT_MIN"); ok {
		min, err := strconv.Atoi(raw)
		if err != nil {
			panic("INGREDIENT_AMOUNT_MIN is not a number")
		}
		vc.MinIngredientAmount = min
	}
	return vc
}

func NewApp() App {
	tableName := os.Getenv("TABLE_NAME")
	topicArn := os.Getenv("TOPIC_ARN")
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		panic("Failed to load AWS config.")
	}
	client := dynamodb.NewFromConfig(cfg)
	snsClient := sns.NewFromConfig(cfg)
	marshaler := token.NewGCM()
	vc := validationConfig()
	catalog := ingredientData.NewIngredientService(tableName, *client, marshaler)
	tagService := tagData.NewTagService(tableName, *client, marshaler)
	ledger := ledgerData.NewLedgerService(tableName, *client, catalog, vc)
	memberships := membershipData.NewMembershipService(tableName, *client, marshaler)
	follows := followData.NewFollowService(tableName, *client, marshaler)
	router := routes.NewRouter(
		recipes.NewRoute(
			recipeData.NewRecipeService(tableName, *client, marshaler, ledger, tagService, vc),
			tagService,
			ledger,
			memberships,
			shopping.NewService(memberships, ledger),
			&services.NotificationSNSService{
				Sns:      *snsClient,
				TopicArn: topicArn,
			},
		),
		ingredients.NewRoute(catalog),
		tags.NewRoute(tagService),
		subscriptions.NewRoute(follows),
	)
	return App{
		Router: *router,
	}
}

func (app *App) HandleRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return app.Router.Invoke(request, ctx), nil
}

func main() {
	app := NewApp()
	lambda.Start(app.HandleRequest)
}
