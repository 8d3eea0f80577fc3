// Package main provides the entry point for the aynstyn assessment service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aynstyn",
	Short: "AI-driven knowledge assessment service",
	Long:  "aynstyn scores free-form explanations of a subject, explains the topics the answer missed, and builds historical timelines, in the language the user wrote in.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
