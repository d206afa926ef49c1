package services

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"philcali.me/cookbook/internal/notifications"
)

type NotificationSNSService struct {
	Sns      sns.Client
	TopicArn string
}

// RecipePublished fans the event out to the author's followers. The
// author rides along as a message attribute so subscription filter
// policies can scope delivery per author.
func (n *NotificationSNSService) RecipePublished(input notifications.RecipePublishedInput) error {
	message, err := json.Marshal(map[string]string{
		"author":     input.Author,
		"recipeId":   input.RecipeId,
		"recipeName": input.RecipeName,
	})
	if err != nil {
		return err
	}
	_, err = n.Sns.Publish(context.TODO(), &sns.PublishInput{
		TopicArn: aws.String(n.TopicArn),
		Message:  aws.String(string(message)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"author": {
				DataType:    aws.String("String"),
				StringValue: aws.String(input.Author),
			},
		},
	})

	return err
}
