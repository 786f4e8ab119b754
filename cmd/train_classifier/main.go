// Package main provides the entry point for the endpoint data-classifier trainer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "train_classifier",
	Short: "Endpoint data-classifier trainer",
	Long:  "Trains a logistic regression model that classifies network endpoints as data or non-data from labeled training.jsonl examples, and exports an inference-ready artifact bundle.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
