package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"image-search-api/pkg/server"
)

func handler(ctx context.Context, event events.S3Event) (string, error) {
	container, err := server.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		return "", err
	}
	return container.UploadHandler.HandleS3Event(ctx, event)
}

func main() {
	awslambda.Start(handler)
}
