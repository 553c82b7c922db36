package main

import (
	"context"
	"log"

	"github.com/futig/interview-backend/internal/builder"
)

func main() {
	ctx := context.Background()

	app, err := builder.Build(ctx)
	if err != nil {
		log.Fatal("Failed to build application: ", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}
