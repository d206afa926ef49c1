package util

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/cookbook/internal/data"
	"philcali.me/cookbook/internal/exceptions"
	"philcali.me/cookbook/internal/routes"
)

// AuthorizationClaims flattens the request's identity claims from
// either a JWT authorizer or a Lambda authorizer payload.
func AuthorizationClaims(event events.APIGatewayV2HTTPRequest) map[string]string {
	claims := make(map[string]string)
	authorizer := event.RequestContext.Authorizer
	if authorizer == nil {
		return claims
	}
	if authorizer.JWT != nil {
		for key, value := range authorizer.JWT.Claims {
			claims[key] = value
		}
	}
	if lambdaClaims, ok := authorizer.Lambda["jwt"]; ok {
		if fields, ok := lambdaClaims.(map[string]interface{}); ok {
			for key, value := range fields {
				claims[key] = fmt.Sprintf("%s", value)
			}
		}
	}
	return claims
}

// AuthorizedRoute binds the authenticated username into the request
// context. Core operations take the identity explicitly; nothing below
// the route layer reads ambient request state.
func AuthorizedRoute(route routes.Route) routes.Route {
	return func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
		if username, ok := AuthorizationClaims(event)["username"]; ok {
			return route(event, context.WithValue(ctx, "Username", username))
		}
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer("Unexpected internal error")
	}
}

func Username(ctx context.Context) string {
	if username, ok := ctx.Value("Username").(string); ok {
		return username
	}
	return ""
}

func RequestParam(ctx context.Context, name string) string {
	if params, ok := ctx.Value("Params").(map[string]string); ok {
		return params[name]
	}
	return ""
}

// ParseQueryParams translates limit and nextToken query parameters
// into storage paging inputs.
func ParseQueryParams(event events.APIGatewayV2HTTPRequest) (data.QueryParams, error) {
	var params data.QueryParams
	if sLimit, ok := event.QueryStringParameters["limit"]; ok {
		limit, err := strconv.Atoi(sLimit)
		if err != nil {
			return params, exceptions.InvalidInput("Limit parameter was not a number type.")
		}
		params.Limit = limit
	}
	if token, ok := event.QueryStringParameters["nextToken"]; ok {
		params.NextToken = []byte(token)
	}
	return params, nil
}

func SerializeResponse[T interface{}, R interface{}](delayed func(T) R, thing T, err error, statusCode int) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	body, err := json.Marshal(delayed(thing))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

func SerializeResponseOK[T interface{}, R interface{}](delayed func(T) R, thing T, err error) (events.APIGatewayV2HTTPResponse, error) {
	return SerializeResponse(delayed, thing, err, 200)
}

func SerializeResponseNoContent(err error) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 204,
	}, nil
}

// SerializeResponseAttachment writes a plain-text download with a
// content disposition naming the file.
func SerializeResponseAttachment(body string, filename string, err error) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	headers := map[string]string{
		"Content-Type":        "text/plain; charset=utf-8",
		"Content-Length":      strconv.Itoa(len(body)),
		"Content-Disposition": fmt.Sprintf("attachment; filename=%s", filename),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 200,
		Headers:    headers,
		Body:       body,
	}, nil
}

func MapOnList[T interface{}, R interface{}](items *[]T, thunk func(T) R) *[]R {
	newItems := make([]R, 0)
	if items != nil {
		for _, item := range *items {
			newItems = append(newItems, thunk(item))
		}
	}
	return &newItems
}

func ConvertQueryResults[D interface{}, R interface{}](items data.QueryResults[D], thunk func(D) R) data.QueryResults[R] {
	if items.Items != nil {
		newItems := make([]R, len(items.Items))
		for i, rd := range items.Items {
			newItems[i] = thunk(rd)
		}
		return data.QueryResults[R]{
			Items:     newItems,
			NextToken: items.NextToken,
		}
	}
	return data.QueryResults[R]{
		Items: make([]R, 0),
	}
}

func ConvertQueryResultsPartial[D interface{}, R interface{}](thunk func(D) R) func(data.QueryResults[D]) data.QueryResults[R] {
	return func(d data.QueryResults[D]) data.QueryResults[R] {
		return ConvertQueryResults(d, thunk)
	}
}
