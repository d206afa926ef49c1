package token_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/cookbook/internal/dynamodb/token"
)

func TestEncryptionMarshaler(t *testing.T) {
	marshaler := token.NewGCM()
	scope := "chef@cookbook.test"
	lastKey := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: "Recipe"},
		"SK": &types.AttributeValueMemberS{Value: "borscht"},
	}

	t.Run("thing==Unmarshal(Marshal(thing))", func(t *testing.T) {
		token, err := marshaler.Marshal(scope, lastKey)
		if err != nil {
			t.Fatalf("Failed to marshal token: %s", lastKey)
		}
		otherKey, err := marshaler.Unmarshal(scope, token)
		if err != nil {
			t.Fatalf("Failed to unmarshal token: %s", err)
		}
		if value, ok := otherKey["SK"]; ok {
			if svalue, ok := value.(*types.AttributeValueMemberS); ok {
				if svalue.Value != "borscht" {
					t.Errorf("otherKey SK is %s", svalue.Value)
				}
			} else {
				t.Error("otherKey SK is not an S type")
			}
		} else {
			t.Errorf("otherKey does not contain SK: %s", otherKey)
		}
	})

	t.Run("len(token)==nil", func(t *testing.T) {
		var emptyMap map[string]types.AttributeValue
		token, err := marshaler.Marshal(scope, emptyMap)
		if err != nil {
			t.Fatalf("Threw an error on marshal: %s", err)
		}
		if token != nil {
			t.Fatalf("Whoa %s is not nil!", token)
		}
	})

	t.Run("scopeA!=scopeB", func(t *testing.T) {
		token, err := marshaler.Marshal(scope, lastKey)
		if err != nil {
			t.Fatalf("Failed to marshal token: %s", lastKey)
		}
		otherKey, err := marshaler.Unmarshal("intruder@cookbook.test", token)
		if err == nil {
			t.Fatalf("Expected an err but received, %v", otherKey)
		}
		if otherKey != nil {
			t.Fatalf("Should not have decrypted %s", otherKey)
		}
	})
}
