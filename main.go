package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/abhisek/sozdik/cmd"
)

func main() {
	// Optional .env for SOZDIK_DB and friends; absence is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
