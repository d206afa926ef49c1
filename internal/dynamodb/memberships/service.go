package memberships

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/cookbook/internal/data"
	"philcali.me/cookbook/internal/dynamodb/services"
	"philcali.me/cookbook/internal/dynamodb/token"
	"philcali.me/cookbook/internal/exceptions"
)

// MembershipDynamoDBService stores favorite and cart rows in per-user
// partitions, one relation per kind, with identical semantics.
type MembershipDynamoDBService struct {
	byKind map[data.MembershipKind]*services.RelationDynamoDBService[data.MembershipDTO, struct{}]
}

func _relationName(kind data.MembershipKind) string {
	return fmt.Sprintf("Membership:%s", kind)
}

func NewMembershipService(tableName string, client dynamodb.Client, marshaler token.TokenMarshaler) data.MembershipDataService {
	byKind := make(map[data.MembershipKind]*services.RelationDynamoDBService[data.MembershipDTO, struct{}], 2)
	for _, kind := range []data.MembershipKind{data.FavoriteKind, data.CartKind} {
		byKind[kind] = &services.RelationDynamoDBService[data.MembershipDTO, struct{}]{
			DynamoDB:       client,
			TableName:      tableName,
			TokenMarshaler: marshaler,
			Name:           _relationName(kind),
			Resource:       strings.ToLower(string(kind)) + " entry",
			Shim: func(pk, sk string) data.MembershipDTO {
				return data.MembershipDTO{PK: pk, SK: sk}
			},
			OnCreate: func(_ struct{}, now time.Time, pk, sk string) data.MembershipDTO {
				return data.MembershipDTO{
					PK:         pk,
					SK:         sk,
					CreateTime: now,
					UpdateTime: now,
				}
			},
		}
	}
	return &MembershipDynamoDBService{byKind: byKind}
}

func (ms *MembershipDynamoDBService) AddMembership(username string, recipeId string, kind data.MembershipKind) (data.MembershipDTO, error) {
	return ms.byKind[kind].Create(username, recipeId, struct{}{})
}

func (ms *MembershipDynamoDBService) RemoveMembership(username string, recipeId string, kind data.MembershipKind) error {
	return ms.byKind[kind].Delete(username, recipeId)
}

func (ms *MembershipDynamoDBService) ContainsMembership(username string, recipeId string, kind data.MembershipKind) (bool, error) {
	_, err := ms.byKind[kind].Get(username, recipeId)
	if err != nil {
		var nfe *exceptions.NotFoundError
		if errors.As(err, &nfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (ms *MembershipDynamoDBService) ListMemberships(username string, kind data.MembershipKind, params data.QueryParams) (data.QueryResults[data.MembershipDTO], error) {
	return ms.byKind[kind].List(username, params)
}
