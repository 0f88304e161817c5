package main

import (
	"context"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"image-search-api/internal/handlers"
	"image-search-api/pkg/lambda"
	"image-search-api/pkg/server"
)

var connections = server.GetConnectionManager()

func handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if rejected := handlers.RejectBlankKeyword(req); rejected != nil {
		return rejected, nil
	}

	container, err := connections.GetContainer(ctx)
	if err != nil {
		return handlers.InternalError(err), nil
	}
	return container.SearchHandler.HandleSearch(ctx, req)
}

func main() {
	awslambda.Start(lambda.APIGatewayHandler(handle))
}
