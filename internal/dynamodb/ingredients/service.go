package ingredients

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/cookbook/internal/data"
	"philcali.me/cookbook/internal/dynamodb/token"
	"philcali.me/cookbook/internal/exceptions"
)

const _partition = "Ingredient"

// DynamoDB batch API limits.
const (
	_batchGetSize   = 100
	_batchWriteSize = 25
)

type IngredientDynamoDBService struct {
	DynamoDB       dynamodb.Client
	TableName      string
	TokenMarshaler token.TokenMarshaler
}

func NewIngredientService(tableName string, client dynamodb.Client, marshaler token.TokenMarshaler) data.IngredientDataService {
	return &IngredientDynamoDBService{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
	}
}

func _getKey(ingredientId string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(_partition)
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(ingredientId)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

func (is *IngredientDynamoDBService) GetIngredient(ingredientId string) (data.IngredientDTO, error) {
	shim := data.IngredientDTO{PK: _partition, SK: ingredientId}
	key, err := _getKey(ingredientId)
	if err != nil {
		return shim, err
	}
	response, err := is.DynamoDB.GetItem(context.TODO(), &dynamodb.GetItemInput{
		TableName: aws.String(is.TableName),
		Key:       key,
	})
	if err != nil {
		return shim, err
	}
	if response.Item == nil {
		return shim, exceptions.NotFound("ingredient", ingredientId)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (is *IngredientDynamoDBService) BatchGetIngredients(ids []string) (map[string]data.IngredientDTO, error) {
	resolved := make(map[string]data.IngredientDTO, len(ids))
	for start := 0; start < len(ids); start += _batchGetSize {
		end := start + _batchGetSize
		if end > len(ids) {
			end = len(ids)
		}
		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range ids[start:end] {
			key, err := _getKey(id)
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
		}
		for len(keys) > 0 {
			output, err := is.DynamoDB.BatchGetItem(context.TODO(), &dynamodb.BatchGetItemInput{
				RequestItems: map[string]types.KeysAndAttributes{
					is.TableName: {Keys: keys},
				},
			})
			if err != nil {
				return nil, err
			}
			var items []data.IngredientDTO
			if err := attributevalue.UnmarshalListOfMaps(output.Responses[is.TableName], &items); err != nil {
				return nil, err
			}
			for _, item := range items {
				resolved[item.SK] = item
			}
			keys = output.UnprocessedKeys[is.TableName].Keys
		}
	}
	return resolved, nil
}

func (is *IngredientDynamoDBService) ListIngredients(params data.QueryParams, namePrefix string) (data.QueryResults[data.IngredientDTO], error) {
	keyEx := expression.Key("PK").Equal(expression.Value(_partition))
	builder := expression.NewBuilder().WithKeyCondition(keyEx)
	if namePrefix != "" {
		builder = builder.WithFilter(expression.Name("searchName").BeginsWith(strings.ToLower(namePrefix)))
	}
	expr, err := builder.Build()
	if err != nil {
		return data.QueryResults[data.IngredientDTO]{}, err
	}
	startKey, err := is.TokenMarshaler.Unmarshal(_partition, params.NextToken)
	if err != nil {
		return data.QueryResults[data.IngredientDTO]{}, err
	}
	output, err := is.DynamoDB.Query(context.TODO(), &dynamodb.QueryInput{
		TableName:                 aws.String(is.TableName),
		Limit:                     params.GetLimit(),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         startKey,
	})
	if err != nil {
		return data.QueryResults[data.IngredientDTO]{}, err
	}
	var items []data.IngredientDTO
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
		return data.QueryResults[data.IngredientDTO]{}, err
	}
	token, err := is.TokenMarshaler.Marshal(_partition, output.LastEvaluatedKey)
	if err != nil {
		return data.QueryResults[data.IngredientDTO]{}, err
	}
	return data.QueryResults[data.IngredientDTO]{
		Items:     items,
		NextToken: token,
	}, nil
}

func (is *IngredientDynamoDBService) BatchImportIngredients(rows []data.IngredientSeedDTO) (int, error) {
	now := time.Now()
	imported := 0
	for start := 0; start < len(rows); start += _batchWriteSize {
		end := start + _batchWriteSize
		if end > len(rows) {
			end = len(rows)
		}
		requests := make([]types.WriteRequest, 0, end-start)
		for _, row := range rows[start:end] {
			item, err := attributevalue.MarshalMap(data.IngredientDTO{
				PK:              _partition,
				SK:              row.Id,
				Name:            row.Name,
				MeasurementUnit: row.MeasurementUnit,
				SearchName:      strings.ToLower(row.Name),
				CreateTime:      now,
				UpdateTime:      now,
			})
			if err != nil {
				return imported, err
			}
			requests = append(requests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		for len(requests) > 0 {
			output, err := is.DynamoDB.BatchWriteItem(context.TODO(), &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					is.TableName: requests,
				},
			})
			if err != nil {
				return imported, err
			}
			requests = output.UnprocessedItems[is.TableName]
		}
		imported += end - start
	}
	return imported, nil
}
