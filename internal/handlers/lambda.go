package handlers

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/labstack/echo/v4"
)

// PathParameter is the query string parameter API Gateway maps the request path to.
const PathParameter = "path"

// HandleAPIGateway serves an API Gateway proxy event. Listing errors are
// returned to the Lambda runtime, which answers with a generic failure.
func (h *IndexHandler) HandleAPIGateway(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp, err := h.Handle(ctx, req.QueryStringParameters[PathParameter])
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    map[string]string{echo.HeaderContentType: resp.ContentType},
		Body:       resp.Body,
	}, nil
}
