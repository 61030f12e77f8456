package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/resume-ats/internal/schemas"
	schemafiles "github.com/jonathan/resume-ats/schemas"
	"github.com/spf13/cobra"
)

var validateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON document against a schema",
	Long: `Validates a JSON document against a JSON Schema.

--schema takes either the name of a schema shipped with the binary (` + "`resume_document`" + `, ` + "`ats_score`" + `, ` + "`autosave_snapshot`" + `)
or a path to a schema file.`,
	RunE: runValidateCmd,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCommand.Flags().StringVar(&validateSchema, "schema", schemafiles.ResumeDocument, "Embedded schema name or path to a JSON Schema file")
	validateCommand.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON document to validate")
	_ = validateCommand.MarkFlagRequired("json")

	rootCmd.AddCommand(validateCommand)
}

func runValidateCmd(cmd *cobra.Command, _ []string) error {
	err := validateDocument(validateSchema, validateJSON)
	return reportValidation(cmd.OutOrStdout(), err)
}

// embeddedSchemaName maps a short or full schema name to an embedded schema file,
// reporting false when name is not one of them.
func embeddedSchemaName(name string) (string, bool) {
	candidate := name
	if !strings.HasSuffix(candidate, ".schema.json") {
		candidate += ".schema.json"
	}
	for _, n := range schemafiles.Names() {
		if n == candidate {
			return n, true
		}
	}
	return "", false
}

// validateDocument validates the JSON file at jsonPath against an embedded schema
// or, failing that, a schema file on disk.
func validateDocument(schema, jsonPath string) error {
	if name, ok := embeddedSchemaName(schema); ok {
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", jsonPath, err)
		}
		return schemas.ValidateEmbedded(name, data)
	}

	schemaPath := schemas.ResolveSchemaPath(schema)
	if schemaPath == "" {
		return fmt.Errorf("schema %q is neither an embedded schema nor an existing file", schema)
	}
	return schemas.ValidateJSON(schemaPath, jsonPath)
}

// reportValidation prints the outcome of a validation and passes through the error
func reportValidation(out io.Writer, err error) error {
	if err == nil {
		_, _ = fmt.Fprintln(out, "Validation passed")
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintln(out, "Validation failed")
		for i, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(out, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
		}
		return fmt.Errorf("%d validation error(s)", len(validationErr.Errors))
	}
	return err
}
