package tags

import (
	"philcali.me/cookbook/internal/data"
)

type Tag struct {
	Id    string `json:"tagId"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func NewTag(entry data.TagDTO) Tag {
	return Tag{
		Id:    entry.SK,
		Name:  entry.Name,
		Color: entry.Color,
		Slug:  entry.Slug,
	}
}
