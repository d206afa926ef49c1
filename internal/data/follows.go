package data

import "time"

type FollowDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

// AuthorId is the range key of a follow row.
func (f FollowDTO) AuthorId() string {
	return f.SK
}

type FollowDataService interface {
	// Follow fails with InvalidInput on a self-follow and Conflict on a
	// duplicate pair.
	Follow(follower string, author string) (FollowDTO, error)
	// Unfollow fails with NotFound when no follow exists.
	Unfollow(follower string, author string) error
	IsFollowing(follower string, author string) (bool, error)
	ListFollowing(follower string, params QueryParams) (QueryResults[FollowDTO], error)
}
