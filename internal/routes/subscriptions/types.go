package subscriptions

import (
	"time"

	"philcali.me/cookbook/internal/data"
)

type Subscription struct {
	AuthorId   string    `json:"authorId"`
	CreateTime time.Time `json:"createTime"`
}

// SubscriptionStatus reports whether the caller follows an author
// without surfacing the follow row itself.
type SubscriptionStatus struct {
	AuthorId     string `json:"authorId"`
	IsSubscribed bool   `json:"isSubscribed"`
}

func NewSubscription(entry data.FollowDTO) Subscription {
	return Subscription{
		AuthorId:   entry.AuthorId(),
		CreateTime: entry.CreateTime,
	}
}
