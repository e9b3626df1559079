package main

import (
	"context"
	"log"

	"github.com/recipebox/recipebox/internal/client/cli"
	"github.com/recipebox/recipebox/internal/client/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
