// Package main provides the entry point for the Job Advisor HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_advisor",
	Short: "Job Advisor HTTP API Server",
	Long:  "Job Advisor evaluates and rewrites job postings with LLM backends: input gating, title checks, content scans, retrieval-grounded re-design suggestions and streaming rewrites.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
