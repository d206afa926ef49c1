package recipes

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"philcali.me/cookbook/internal/data"
	"philcali.me/cookbook/internal/dynamodb/ledger"
	"philcali.me/cookbook/internal/dynamodb/token"
	"philcali.me/cookbook/internal/exceptions"
)

const _partition = "Recipe"

// RecipeDynamoDBService orchestrates authoring: the scalar fields, the
// tag set and the ingredient ledger move in one TransactWriteItems
// call, so a rejected phase leaves nothing half-applied. Concurrent
// replaces are serialized with an update token condition on the recipe
// item; the loser's transaction cancels instead of interleaving.
type RecipeDynamoDBService struct {
	DynamoDB       dynamodb.Client
	TableName      string
	TokenMarshaler token.TokenMarshaler
	Ledger         *ledger.LedgerDynamoDBService
	Tags           data.TagDataService
	Config         data.ValidationConfig
}

func NewRecipeService(tableName string, client dynamodb.Client, marshaler token.TokenMarshaler, entries *ledger.LedgerDynamoDBService, tags data.TagDataService, config data.ValidationConfig) data.RecipeDataService {
	return &RecipeDynamoDBService{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Ledger:         entries,
		Tags:           tags,
		Config:         config,
	}
}

func _getKey(recipeId string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(_partition)
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(recipeId)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

// resolveTags checks every id against the catalog and returns the set
// with repeats collapsed, preserving first-seen order. BatchGetItem
// rejects duplicate keys, so the collapse happens before the fetch.
func (rs *RecipeDynamoDBService) resolveTags(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, exceptions.InvalidInput("Add at least one tag.")
	}
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	resolved, err := rs.Tags.BatchGetTags(unique)
	if err != nil {
		return nil, err
	}
	for _, id := range unique {
		if _, ok := resolved[id]; !ok {
			return nil, exceptions.NotFound("tag", id)
		}
	}
	return unique, nil
}

func (rs *RecipeDynamoDBService) GetRecipe(recipeId string) (data.RecipeDTO, error) {
	shim := data.RecipeDTO{PK: _partition, SK: recipeId}
	key, err := _getKey(recipeId)
	if err != nil {
		return shim, err
	}
	response, err := rs.DynamoDB.GetItem(context.TODO(), &dynamodb.GetItemInput{
		TableName: aws.String(rs.TableName),
		Key:       key,
	})
	if err != nil {
		return shim, err
	}
	if response.Item == nil {
		return shim, exceptions.NotFound("recipe", recipeId)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (rs *RecipeDynamoDBService) ListRecipes(params data.QueryParams) (data.QueryResults[data.RecipeDTO], error) {
	keyEx := expression.Key("PK").Equal(expression.Value(_partition))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return data.QueryResults[data.RecipeDTO]{}, err
	}
	startKey, err := rs.TokenMarshaler.Unmarshal(_partition, params.NextToken)
	if err != nil {
		return data.QueryResults[data.RecipeDTO]{}, err
	}
	output, err := rs.DynamoDB.Query(context.TODO(), &dynamodb.QueryInput{
		TableName:                 aws.String(rs.TableName),
		Limit:                     params.GetLimit(),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         startKey,
	})
	if err != nil {
		return data.QueryResults[data.RecipeDTO]{}, err
	}
	var items []data.RecipeDTO
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
		return data.QueryResults[data.RecipeDTO]{}, err
	}
	token, err := rs.TokenMarshaler.Marshal(_partition, output.LastEvaluatedKey)
	if err != nil {
		return data.QueryResults[data.RecipeDTO]{}, err
	}
	return data.QueryResults[data.RecipeDTO]{
		Items:     items,
		NextToken: token,
	}, nil
}

func (rs *RecipeDynamoDBService) CreateRecipe(author string, input data.RecipeInputDTO) (data.RecipeDTO, error) {
	if input.Name == nil || input.Text == nil || input.Image == nil || input.CookingTimeMinutes == nil {
		return data.RecipeDTO{}, exceptions.InvalidInput("Name, text, image and cooking time are required.")
	}
	if input.Ingredients == nil {
		return data.RecipeDTO{}, exceptions.InvalidInput("Add at least one ingredient.")
	}
	if err := rs.Ledger.ValidateEntries(*input.Ingredients); err != nil {
		return data.RecipeDTO{}, err
	}
	if err := rs.Config.ValidateCookingTime(input.CookingTimeMinutes); err != nil {
		return data.RecipeDTO{}, err
	}
	if input.TagIds == nil {
		return data.RecipeDTO{}, exceptions.InvalidInput("Add at least one tag.")
	}
	tagIds, err := rs.resolveTags(*input.TagIds)
	if err != nil {
		return data.RecipeDTO{}, err
	}
	gid, err := uuid.NewUUID()
	if err != nil {
		return data.RecipeDTO{}, err
	}
	now := time.Now()
	shim := data.RecipeDTO{
		PK:                 _partition,
		SK:                 gid.String(),
		Name:               *input.Name,
		Image:              *input.Image,
		Text:               *input.Text,
		Author:             author,
		CookingTimeMinutes: input.CookingTimeMinutes,
		TagIds:             tagIds,
		UpdateToken:        uuid.NewString(),
		CreateTime:         now,
		UpdateTime:         now,
	}
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeNotExists().And(expression.Name("SK").AttributeNotExists())).Build()
	if err != nil {
		return shim, err
	}
	writes := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:                aws.String(rs.TableName),
				Item:                     item,
				ConditionExpression:      expr.Condition(),
				ExpressionAttributeNames: expr.Names(),
			},
		},
	}
	entryWrites, err := rs.Ledger.TransactReplace(shim.SK, *input.Ingredients)
	if err != nil {
		return shim, err
	}
	writes = append(writes, entryWrites...)
	_, err = rs.DynamoDB.TransactWriteItems(context.TODO(), &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			return shim, exceptions.Conflict("recipe", shim.SK)
		}
		return shim, err
	}
	return shim, nil
}

func (rs *RecipeDynamoDBService) UpdateRecipe(recipeId string, input data.RecipeInputDTO) (data.RecipeDTO, error) {
	existing, err := rs.GetRecipe(recipeId)
	if err != nil {
		return existing, err
	}
	if input.Ingredients != nil {
		if err := rs.Ledger.ValidateEntries(*input.Ingredients); err != nil {
			return existing, err
		}
	}
	merged := existing
	if input.Name != nil {
		merged.Name = *input.Name
	}
	if input.Image != nil {
		merged.Image = *input.Image
	}
	if input.Text != nil {
		merged.Text = *input.Text
	}
	if input.CookingTimeMinutes != nil {
		merged.CookingTimeMinutes = input.CookingTimeMinutes
	}
	if err := rs.Config.ValidateCookingTime(merged.CookingTimeMinutes); err != nil {
		return existing, err
	}
	if input.TagIds != nil {
		tagIds, err := rs.resolveTags(*input.TagIds)
		if err != nil {
			return existing, err
		}
		merged.TagIds = tagIds
	}
	merged.UpdateToken = uuid.NewString()
	merged.UpdateTime = time.Now()
	item, err := attributevalue.MarshalMap(merged)
	if err != nil {
		return existing, err
	}
	condition := expression.Name("updateToken").Equal(expression.Value(existing.UpdateToken))
	expr, err := expression.NewBuilder().WithCondition(condition).Build()
	if err != nil {
		return existing, err
	}
	writes := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:                 aws.String(rs.TableName),
				Item:                      item,
				ConditionExpression:       expr.Condition(),
				ExpressionAttributeNames:  expr.Names(),
				ExpressionAttributeValues: expr.Values(),
			},
		},
	}
	if input.Ingredients != nil {
		entryWrites, err := rs.Ledger.TransactReplace(recipeId, *input.Ingredients)
		if err != nil {
			return existing, err
		}
		writes = append(writes, entryWrites...)
	}
	_, err = rs.DynamoDB.TransactWriteItems(context.TODO(), &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			return existing, exceptions.Conflict("recipe", recipeId)
		}
		return existing, err
	}
	return merged, nil
}

func (rs *RecipeDynamoDBService) DeleteRecipe(recipeId string) error {
	key, err := _getKey(recipeId)
	if err != nil {
		return err
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeExists().And(expression.Name("SK").AttributeExists())).Build()
	if err != nil {
		return err
	}
	writes := []types.TransactWriteItem{
		{
			Delete: &types.Delete{
				TableName:                aws.String(rs.TableName),
				Key:                      key,
				ConditionExpression:      expr.Condition(),
				ExpressionAttributeNames: expr.Names(),
			},
		},
	}
	entryWrites, err := rs.Ledger.TransactClear(recipeId)
	if err != nil {
		return err
	}
	writes = append(writes, entryWrites...)
	_, err = rs.DynamoDB.TransactWriteItems(context.TODO(), &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			return exceptions.NotFound("recipe", recipeId)
		}
	}
	return err
}
