package ingredients

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/cookbook/internal/data"
	"philcali.me/cookbook/internal/routes"
	"philcali.me/cookbook/internal/routes/util"
)

type IngredientService struct {
	data data.IngredientDataService
}

func NewRoute(data data.IngredientDataService) routes.Service {
	return &IngredientService{
		data: data,
	}
}

func (s *IngredientService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/ingredients":               util.AuthorizedRoute(s.ListIngredients),
		"GET:/ingredients/:ingredientId": util.AuthorizedRoute(s.GetIngredient),
	}
}

func (s *IngredientService) ListIngredients(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.ParseQueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	results, err := s.data.ListIngredients(params, event.QueryStringParameters["name"])
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewIngredient), results, err)
}

func (s *IngredientService) GetIngredient(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := s.data.GetIngredient(util.RequestParam(ctx, "ingredientId"))
	return util.SerializeResponseOK(NewIngredient, item, err)
}
