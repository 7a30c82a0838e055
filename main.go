package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/docschat/docschat/cmd"
)

func main() {
	// Provider credentials may live in a local .env file during development.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
