package data

import "time"

type TagDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	Name       string    `dynamodbav:"name"`
	Color      string    `dynamodbav:"color"`
	Slug       string    `dynamodbav:"slug"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

type TagInputDTO struct {
	Name  *string `dynamodbav:"name"`
	Color *string `dynamodbav:"color"`
	Slug  *string `dynamodbav:"slug"`
}

type TagDataService interface {
	GetTag(tagId string) (TagDTO, error)
	// BatchGetTags resolves tags by id; unresolved ids are absent from
	// the result map.
	BatchGetTags(ids []string) (map[string]TagDTO, error)
	ListTags(params QueryParams) (QueryResults[TagDTO], error)
	// CreateTag enforces slug uniqueness across the table.
	CreateTag(input TagInputDTO) (TagDTO, error)
}
