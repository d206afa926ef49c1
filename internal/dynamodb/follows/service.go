package follows

import (
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/cookbook/internal/data"
	"philcali.me/cookbook/internal/dynamodb/services"
	"philcali.me/cookbook/internal/dynamodb/token"
	"philcali.me/cookbook/internal/exceptions"
)

type FollowDynamoDBService struct {
	relation *services.RelationDynamoDBService[data.FollowDTO, struct{}]
}

func NewFollowService(tableName string, client dynamodb.Client, marshaler token.TokenMarshaler) data.FollowDataService {
	return &FollowDynamoDBService{
		relation: &services.RelationDynamoDBService[data.FollowDTO, struct{}]{
			DynamoDB:       client,
			TableName:      tableName,
			TokenMarshaler: marshaler,
			Name:           "Follow",
			Resource:       "subscription",
			Shim: func(pk, sk string) data.FollowDTO {
				return data.FollowDTO{PK: pk, SK: sk}
			},
			OnCreate: func(_ struct{}, now time.Time, pk, sk string) data.FollowDTO {
				return data.FollowDTO{
					PK:         pk,
					SK:         sk,
					CreateTime: now,
					UpdateTime: now,
				}
			},
		},
	}
}

func (fs *FollowDynamoDBService) Follow(follower string, author string) (data.FollowDTO, error) {
	if follower == author {
		return data.FollowDTO{}, exceptions.InvalidInput("Authors cannot subscribe to themselves.")
	}
	return fs.relation.Create(follower, author, struct{}{})
}

func (fs *FollowDynamoDBService) Unfollow(follower string, author string) error {
	return fs.relation.Delete(follower, author)
}

func (fs *FollowDynamoDBService) IsFollowing(follower string, author string) (bool, error) {
	_, err := fs.relation.Get(follower, author)
	if err != nil {
		var nfe *exceptions.NotFoundError
		if errors.As(err, &nfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (fs *FollowDynamoDBService) ListFollowing(follower string, params data.QueryParams) (data.QueryResults[data.FollowDTO], error) {
	return fs.relation.List(follower, params)
}
