package main

import (
	"context"
	"fmt"
	"os"

	lambdaEvents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/cookbook/internal/data"
	ingredientData "philcali.me/cookbook/internal/dynamodb/ingredients"
	ledgerData "philcali.me/cookbook/internal/dynamodb/ledger"
	"philcali.me/cookbook/internal/dynamodb/token"
	"philcali.me/cookbook/internal/events"
)

func HandleRequest(ctx context.Context, event lambdaEvents.DynamoDBEvent) error {
	tableName := os.Getenv("TABLE_NAME")
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}

	client := dynamodb.NewFromConfig(cfg)
	marshaler := token.NewGCM()
	catalog := ingredientData.NewIngredientService(tableName, *client, marshaler)
	ledger := ledgerData.NewLedgerService(tableName, *client, catalog, data.DefaultValidationConfig())

	handlers := []events.EventFilter{
		events.DefaultRecipeCleanupHandler(client, tableName, ledger),
	}

	for _, record := range event.Records {
		for _, handler := range handlers {
			if handler.Filter(record) {
				err := handler.Apply(record)
				if err != nil {
					fmt.Printf("ERROR: failed to handle %s: %v", err.Error(), record)
					break
				}
			}
		}
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
