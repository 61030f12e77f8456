package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/spf13/cobra"
)

var templatesJSON bool

var templatesCommand = &cobra.Command{
	Use:   "templates",
	Short: "List resume templates with their ATS compatibility ratings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		templates := types.Templates()
		if !templatesJSON {
			observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(templates)
			return nil
		}

		data, err := json.MarshalIndent(templates, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal templates: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	templatesCommand.Flags().BoolVar(&templatesJSON, "json", false, "Print the rating table as JSON")
	rootCmd.AddCommand(templatesCommand)
}
