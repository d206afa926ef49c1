package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/cookbook/internal/data"
	"philcali.me/cookbook/internal/exceptions"
)

// LedgerDynamoDBService owns the per-recipe ingredient rows. Rows are
// keyed by the recipe alone so any reader's cart can reach them, and a
// replace always runs as a single transaction: the clear and the
// insert land together or not at all.
type LedgerDynamoDBService struct {
	DynamoDB  dynamodb.Client
	TableName string
	Catalog   data.IngredientDataService
	Config    data.ValidationConfig
}

func NewLedgerService(tableName string, client dynamodb.Client, catalog data.IngredientDataService, config data.ValidationConfig) *LedgerDynamoDBService {
	return &LedgerDynamoDBService{
		DynamoDB:  client,
		TableName: tableName,
		Catalog:   catalog,
		Config:    config,
	}
}

func PartitionKey(recipeId string) string {
	return fmt.Sprintf("Ledger:%s", recipeId)
}

func (ls *LedgerDynamoDBService) rawEntries(recipeId string) ([]data.IngredientEntryDTO, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(PartitionKey(recipeId)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, err
	}
	var rows []data.IngredientEntryDTO
	var startKey map[string]types.AttributeValue
	for {
		output, err := ls.DynamoDB.Query(context.TODO(), &dynamodb.QueryInput{
			TableName:                 aws.String(ls.TableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []data.IngredientEntryDTO
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &page); err != nil {
			return nil, err
		}
		rows = append(rows, page...)
		if len(output.LastEvaluatedKey) == 0 {
			break
		}
		startKey = output.LastEvaluatedKey
	}
	return rows, nil
}

func (ls *LedgerDynamoDBService) EntriesFor(recipeId string) ([]data.ResolvedEntryDTO, error) {
	rows, err := ls.rawEntries(recipeId)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.SK
	}
	catalog, err := ls.Catalog.BatchGetIngredients(ids)
	if err != nil {
		return nil, err
	}
	resolved := make([]data.ResolvedEntryDTO, 0, len(rows))
	for _, row := range rows {
		ingredient, ok := catalog[row.SK]
		if !ok {
			return nil, exceptions.NotFound("ingredient", row.SK)
		}
		resolved = append(resolved, data.ResolvedEntryDTO{
			IngredientId:    row.SK,
			Name:            ingredient.Name,
			MeasurementUnit: ingredient.MeasurementUnit,
			Amount:          row.Amount,
		})
	}
	sort.Slice(resolved, func(i, j int) bool {
		return resolved[i].Name < resolved[j].Name
	})
	return resolved, nil
}

// ValidateEntries runs the ledger's input checks in contract order:
// non-empty list, no repeated ids, every id resolvable, every amount
// at or above the floor.
func (ls *LedgerDynamoDBService) ValidateEntries(entries []data.EntryInputDTO) error {
	if err := ls.Config.ValidateEntryShape(entries); err != nil {
		return err
	}
	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.Id
	}
	catalog, err := ls.Catalog.BatchGetIngredients(ids)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if _, ok := catalog[entry.Id]; !ok {
			return exceptions.NotFound("ingredient", entry.Id)
		}
	}
	return ls.Config.ValidateEntryAmounts(entries)
}

// TransactReplace builds the clear+insert write set for a replace:
// deletes for rows not present in the new set, puts for the new rows.
// Callers fold these into their own TransactWriteItems call.
func (ls *LedgerDynamoDBService) TransactReplace(recipeId string, entries []data.EntryInputDTO) ([]types.TransactWriteItem, error) {
	existing, err := ls.rawEntries(recipeId)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(entries))
	for _, entry := range entries {
		keep[entry.Id] = true
	}
	var writes []types.TransactWriteItem
	for _, row := range existing {
		if keep[row.SK] {
			continue
		}
		key, err := _entryKey(recipeId, row.SK)
		if err != nil {
			return nil, err
		}
		writes = append(writes, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(ls.TableName),
				Key:       key,
			},
		})
	}
	for _, entry := range entries {
		item, err := attributevalue.MarshalMap(data.IngredientEntryDTO{
			PK:     PartitionKey(recipeId),
			SK:     entry.Id,
			Amount: entry.Amount,
		})
		if err != nil {
			return nil, err
		}
		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(ls.TableName),
				Item:      item,
			},
		})
	}
	return writes, nil
}

// TransactClear builds deletes for every ledger row of the recipe.
func (ls *LedgerDynamoDBService) TransactClear(recipeId string) ([]types.TransactWriteItem, error) {
	return ls.TransactReplace(recipeId, nil)
}

func (ls *LedgerDynamoDBService) ReplaceEntries(recipeId string, entries []data.EntryInputDTO) error {
	if err := ls.ValidateEntries(entries); err != nil {
		return err
	}
	writes, err := ls.TransactReplace(recipeId, entries)
	if err != nil {
		return err
	}
	_, err = ls.DynamoDB.TransactWriteItems(context.TODO(), &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	})
	return err
}

func _entryKey(recipeId string, ingredientId string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(PartitionKey(recipeId))
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(ingredientId)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}
