// Package main provides the entry point for the resume ATS analysis CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_ats",
	Short: "Resume ATS compatibility scoring",
	Long:  "resume_ats scores a resume against a job description the way an applicant tracking system would: keyword coverage, formatting, sections, readability and template compatibility, with improvement suggestions.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
