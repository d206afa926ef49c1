package tags

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/cookbook/internal/data"
	"philcali.me/cookbook/internal/routes"
	"philcali.me/cookbook/internal/routes/util"
)

type TagService struct {
	data data.TagDataService
}

func NewRoute(data data.TagDataService) routes.Service {
	return &TagService{
		data: data,
	}
}

func (s *TagService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/tags":        util.AuthorizedRoute(s.ListTags),
		"GET:/tags/:tagId": util.AuthorizedRoute(s.GetTag),
	}
}

func (s *TagService) ListTags(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.ParseQueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	results, err := s.data.ListTags(params)
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewTag), results, err)
}

func (s *TagService) GetTag(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := s.data.GetTag(util.RequestParam(ctx, "tagId"))
	return util.SerializeResponseOK(NewTag, item, err)
}
