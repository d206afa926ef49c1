package subscriptions

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/cookbook/internal/data"
	"philcali.me/cookbook/internal/routes"
	"philcali.me/cookbook/internal/routes/util"
)

type SubscriptionService struct {
	data data.FollowDataService
}

func NewRoute(data data.FollowDataService) routes.Service {
	return &SubscriptionService{
		data: data,
	}
}

func (s *SubscriptionService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/subscriptions":                     util.AuthorizedRoute(s.ListSubscriptions),
		"GET:/authors/:authorId/subscription":    util.AuthorizedRoute(s.GetSubscription),
		"POST:/authors/:authorId/subscription":   util.AuthorizedRoute(s.Subscribe),
		"DELETE:/authors/:authorId/subscription": util.AuthorizedRoute(s.Unsubscribe),
	}
}

func (s *SubscriptionService) GetSubscription(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	authorId := util.RequestParam(ctx, "authorId")
	following, err := s.data.IsFollowing(util.Username(ctx), authorId)
	return util.SerializeResponseOK(func(subscribed bool) SubscriptionStatus {
		return SubscriptionStatus{AuthorId: authorId, IsSubscribed: subscribed}
	}, following, err)
}

func (s *SubscriptionService) ListSubscriptions(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.ParseQueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	results, err := s.data.ListFollowing(util.Username(ctx), params)
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewSubscription), results, err)
}

func (s *SubscriptionService) Subscribe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	follow, err := s.data.Follow(util.Username(ctx), util.RequestParam(ctx, "authorId"))
	return util.SerializeResponse(NewSubscription, follow, err, 201)
}

func (s *SubscriptionService) Unsubscribe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeResponseNoContent(s.data.Unfollow(util.Username(ctx), util.RequestParam(ctx, "authorId")))
}
