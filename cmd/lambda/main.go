// Command lambda serves the bucket index behind API Gateway. The request path
// arrives in the "path" query string parameter.
package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/damacus/bucket-index/internal/app"
	"github.com/damacus/bucket-index/internal/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("BUCKET_INDEX_CONFIG"), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := app.NewLogger(cfg.Log)
	a, err := app.New(cfg, log)
	if err != nil {
		log.ErrorWith("failed to create object lister", err, nil)
		os.Exit(1)
	}

	lambda.Start(a.Handler.HandleAPIGateway)
}
