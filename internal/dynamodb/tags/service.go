package tags

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
	"philcali.me/cookbook/internal/dynamodb/token"
	"philcali.me/cookbook/internal/exceptions"
)

const (
	_partition     = "Tag"
	_slugPartition = "TagSlug"
)

type TagDynamoDBService struct {
	DynamoDB       dynamodb.Client
	TableName      string
	TokenMarshaler token.TokenMarshaler
}

func NewTagService(tableName string, client dynamodb.Client, marshaler token.TokenMarshaler) data.TagDataService {
	return &TagDynamoDBService{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
	}
}

func _getKey(partition string, sk string) (map[string]types.AttributeValue, error) {
	pkv, err := attributevalue.Marshal(partition)
	if err != nil {
		return nil, err
	}
	skv, err := attributevalue.Marshal(sk)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pkv, "SK": skv}, nil
}

func (ts *TagDynamoDBService) GetTag(tagId string) (data.TagDTO, error) {
	shim := data.TagDTO{PK: _partition, SK: tagId}
	key, err := _getKey(_partition, tagId)
	if err != nil {
		return shim, err
	}
	response, err := ts.DynamoDB.GetItem(context.TODO(), &dynamodb.GetItemInput{
		TableName: aws.String(ts.TableName),
		Key:       key,
	})
	if err != nil {
		return shim, err
	}
	if response.Item == nil {
		return shim, exceptions.NotFound("tag", tagId)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (ts *TagDynamoDBService) BatchGetTags(ids []string) (map[string]data.TagDTO, error) {
	resolved := make(map[string]data.TagDTO, len(ids))
	keys := make([]map[string]types.AttributeValue, 0, len(ids))
	for _, id := range ids {
		key, err := _getKey(_partition, id)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	for len(keys) > 0 {
		output, err := ts.DynamoDB.BatchGetItem(context.TODO(), &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				ts.TableName: {Keys: keys},
			},
		})
		if err != nil {
			return nil, err
		}
		var items []data.TagDTO
		if err := attributevalue.UnmarshalListOfMaps(output.Responses[ts.TableName], &items); err != nil {
			return nil, err
		}
		for _, item := range items {
			resolved[item.SK] = item
		}
		keys = output.UnprocessedKeys[ts.TableName].Keys
	}
	return resolved, nil
}

func (ts *TagDynamoDBService) ListTags(params data.QueryParams) (data.QueryResults[data.TagDTO], error) {
	keyEx := expression.Key("PK").Equal(expression.Value(_partition))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return data.QueryResults[data.TagDTO]{}, err
	}
	startKey, err := ts.TokenMarshaler.Unmarshal(_partition, params.NextToken)
	if err != nil {
		return data.QueryResults[data.TagDTO]{}, err
	}
	output, err := ts.DynamoDB.Query(context.TODO(), &dynamodb.QueryInput{
		TableName:                 aws.String(ts.TableName),
		Limit:                     params.GetLimit(),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         startKey,
	})
	if err != nil {
		return data.QueryResults[data.TagDTO]{}, err
	}
	var items []data.TagDTO
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
		return data.QueryResults[data.TagDTO]{}, err
	}
	token, err := ts.TokenMarshaler.Marshal(_partition, output.LastEvaluatedKey)
	if err != nil {
		return data.QueryResults[data.TagDTO]{}, err
	}
	return data.QueryResults[data.TagDTO]{
		Items:     items,
		NextToken: token,
	}, nil
}

// CreateTag writes the tag and a slug marker item in one transaction.
// The marker's conditional put is what makes the slug unique across
// the table.
func (ts *TagDynamoDBService) CreateTag(input data.TagInputDTO) (data.TagDTO, error) {
	gid, err := uuid.NewUUID()
	if err != nil {
		return data.TagDTO{}, err
	}
	now := time.Now()
	shim := data.TagDTO{
		PK:         _partition,
		SK:         gid.String(),
		Name:       *input.Name,
		Color:      *input.Color,
		Slug:       *input.Slug,
		CreateTime: now,
		UpdateTime: now,
	}
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	marker, err := _getKey(_slugPartition, shim.Slug)
	if err != nil {
		return shim, err
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeNotExists().And(expression.Name("SK").AttributeNotExists())).Build()
	if err != nil {
		return shim, err
	}
	_, err = ts.DynamoDB.TransactWriteItems(context.TODO(), &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                aws.String(ts.TableName),
					Item:                     item,
					ConditionExpression:      expr.Condition(),
					ExpressionAttributeNames: expr.Names(),
				},
			},
			{
				Put: &types.Put{
					TableName:                aws.String(ts.TableName),
					Item:                     marker,
					ConditionExpression:      expr.Condition(),
					ExpressionAttributeNames: expr.Names(),
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			return shim, exceptions.Conflict("tag slug", shim.Slug)
		}
		return shim, err
	}
	return shim, nil
}
