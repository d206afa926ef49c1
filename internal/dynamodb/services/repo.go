package services

import (
	"context"
	"errors"
	"fmt"
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

// RelationDynamoDBService backs pair relations owned by a scope (a
// username) where the caller names the range key: membership rows keyed
// by recipe, follow rows keyed by author. Creates and deletes are
// conditional so duplicates and absent rows map onto the error
// taxonomy instead of being silently absorbed.
type RelationDynamoDBService[T interface{}, I interface{}] struct {
	DynamoDB       dynamodb.Client
	TableName      string
	TokenMarshaler token.TokenMarshaler
	Name           string
	Resource       string
	Shim           func(pk string, sk string) T
	OnCreate       func(I, time.Time, string, string) T
}

func _getPrimaryKey(scope string, name string) string {
	if scope == "" {
		return name
	}
	return fmt.Sprintf("%s:%s", scope, name)
}

func _getKey(pks string, sks string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(pks)
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(sks)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

func (rs *RelationDynamoDBService[T, I]) List(scope string, params data.QueryParams) (data.QueryResults[T], error) {
	keyEx := expression.Key("PK").Equal(expression.Value(_getPrimaryKey(scope, rs.Name)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	var items []T
	var startKey map[string]types.AttributeValue
	startKey, err = rs.TokenMarshaler.Unmarshal(scope, params.NextToken)
	if err != nil {
		return data.QueryResults[T]{}, err
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
		return data.QueryResults[T]{}, err
	}
	err = attributevalue.UnmarshalListOfMaps(output.Items, &items)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	token, err := rs.TokenMarshaler.Marshal(scope, output.LastEvaluatedKey)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	return data.QueryResults[T]{
		Items:     items,
		NextToken: token,
	}, nil
}

func (rs *RelationDynamoDBService[T, I]) Create(scope string, itemId string, input I) (T, error) {
	now := time.Now()
	shim := rs.OnCreate(input, now, _getPrimaryKey(scope, rs.Name), itemId)
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeNotExists().And(expression.Name("SK").AttributeNotExists())).Build()
	if err != nil {
		return shim, err
	}
	_, err = rs.DynamoDB.PutItem(context.TODO(), &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(rs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return shim, exceptions.Conflict(rs.Resource, itemId)
		}
		return shim, err
	}
	return shim, err
}

func (rs *RelationDynamoDBService[T, I]) Get(scope string, itemId string) (T, error) {
	pk := _getPrimaryKey(scope, rs.Name)
	shim := rs.Shim(pk, itemId)
	key, err := _getKey(pk, itemId)
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
		return shim, exceptions.NotFound(rs.Resource, itemId)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (rs *RelationDynamoDBService[T, I]) Delete(scope string, itemId string) error {
	pk := _getPrimaryKey(scope, rs.Name)
	key, err := _getKey(pk, itemId)
	if err != nil {
		return err
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeExists().And(expression.Name("SK").AttributeExists())).Build()
	if err != nil {
		return err
	}
	_, err = rs.DynamoDB.DeleteItem(context.TODO(), &dynamodb.DeleteItemInput{
		Key:                      key,
		TableName:                aws.String(rs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return exceptions.NotFound(rs.Resource, itemId)
		}
	}
	return err
}
