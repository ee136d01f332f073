package main

import (
	"context"
	"log"
	"os"

	"github.com/dstepanenko/storefront/internal/server/config"
	"github.com/dstepanenko/storefront/internal/userctl"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	if err := userctl.Run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}

}
