package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/TechXTT/modelgen/pkg/cli"
)

func main() {
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("modelgen: %v", err)
	}
}
