package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/cookbook/internal/dynamodb/ledger"
)

// RecipeCleanupHandler reacts to a removed recipe row by deleting its
// ledger rows and every membership row pointing at it. Memberships
// live in per-user partitions, so the sweep is a filtered scan rather
// than a query; recipe removals are rare enough that the scan is the
// simpler trade.
type RecipeCleanupHandler struct {
	DynamoDB  *dynamodb.Client
	TableName string
	Ledger    *ledger.LedgerDynamoDBService
}

func (rh *RecipeCleanupHandler) Filter(record events.DynamoDBEventRecord) bool {
	return record.EventName == "REMOVE" && record.Change.Keys["PK"].String() == "Recipe"
}

func (rh *RecipeCleanupHandler) Apply(record events.DynamoDBEventRecord) error {
	recipeId := record.Change.Keys["SK"].String()
	writes, err := rh.Ledger.TransactClear(recipeId)
	if err != nil {
		return err
	}
	if len(writes) > 0 {
		if _, err := rh.DynamoDB.TransactWriteItems(context.TODO(), &dynamodb.TransactWriteItemsInput{
			TransactItems: writes,
		}); err != nil {
			return err
		}
	}
	removed, err := rh.sweepMemberships(recipeId)
	if err != nil {
		return err
	}
	fmt.Printf("Cleaned up recipe %s: %d ledger rows, %d membership rows\n", recipeId, len(writes), removed)
	return nil
}

func (rh *RecipeCleanupHandler) sweepMemberships(recipeId string) (int, error) {
	filter := expression.Name("SK").Equal(expression.Value(recipeId)).
		And(expression.Name("PK").Contains(":Membership:"))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return 0, err
	}
	removed := 0
	var startKey map[string]types.AttributeValue
	for {
		output, err := rh.DynamoDB.Scan(context.TODO(), &dynamodb.ScanInput{
			TableName:                 aws.String(rh.TableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return removed, err
		}
		for _, item := range output.Items {
			if _, err := rh.DynamoDB.DeleteItem(context.TODO(), &dynamodb.DeleteItemInput{
				TableName: aws.String(rh.TableName),
				Key: map[string]types.AttributeValue{
					"PK": item["PK"],
					"SK": item["SK"],
				},
			}); err != nil {
				return removed, err
			}
			removed++
		}
		if len(output.LastEvaluatedKey) == 0 {
			return removed, nil
		}
		startKey = output.LastEvaluatedKey
	}
}

func DefaultRecipeCleanupHandler(client *dynamodb.Client, tableName string, ledgerData *ledger.LedgerDynamoDBService) *RecipeCleanupHandler {
	return &RecipeCleanupHandler{
		DynamoDB:  client,
		TableName: tableName,
		Ledger:    ledgerData,
	}
}
