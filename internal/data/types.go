package data

type QueryParams struct {
	Limit     int    `json:"limit"`
	NextToken []byte `json:"nextToken"`
}

func (q *QueryParams) GetLimit() *int32 {
	limit := int32(q.Limit)
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return &limit
}

type QueryResults[T interface{}] struct {
	Items     []T    `json:"items"`
	NextToken []byte `json:"nextToken"`
}

type NextToken map[string]map[string]string

// Repository is the shape shared by single-partition relations keyed
// by an owning scope (memberships, follows). Reference and recipe data
// have bespoke services.
type Repository[T interface{}, I interface{}] interface {
	Get(scope string, itemId string) (T, error)
	Create(scope string, itemId string, input I) (T, error)
	Delete(scope string, itemId string) error
	List(scope string, params QueryParams) (QueryResults[T], error)
}
