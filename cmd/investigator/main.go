package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/doeshing/investigator-go/internal/infrastructure/cli"
)

func main() {
	// Model keys may live in a local .env file.
	_ = godotenv.Load()

	ctx := context.Background()
	root, provider := cli.NewRootCmd(cli.Options{Verbose: isVerbose()})

	err := root.ExecuteContext(ctx)
	if closeErr := provider.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	value := os.Getenv("INVESTIGATOR_DEBUG")
	return strings.EqualFold(value, "1") || strings.EqualFold(value, "true")
}
