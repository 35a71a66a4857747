package main

import (
	"github.com/joho/godotenv"
	cmd "github.com/rohmanhakim/nl-locator/internal/cli"
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()
	cmd.Execute()
}
