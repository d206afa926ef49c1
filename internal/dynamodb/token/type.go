package token

import "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

// TokenMarshaler seals a DynamoDB pagination key into an opaque token
// bound to the requesting scope, so one caller's token cannot resume
// another caller's query.
type TokenMarshaler interface {
	Marshal(scope string, lastKey map[string]types.AttributeValue) ([]byte, error)

	Unmarshal(scope string, token []byte) (map[string]types.AttributeValue, error)
}
