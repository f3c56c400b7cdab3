package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/aardvark-harvest/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Validate a record file against a JSON Schema",
	Long:  "Validates a written {id}.json record against a local Aardvark JSON Schema and lists every violation.",
	RunE:  runValidate,
}

var (
	validateSchemaPath string
	validateJSONPath   string
)

func init() {
	validateCommand.Flags().StringVarP(&validateSchemaPath, "schema", "s", "", "Path to JSON Schema file (required)")
	validateCommand.Flags().StringVarP(&validateJSONPath, "json", "j", "", "Path to record JSON file (required)")

	_ = validateCommand.MarkFlagRequired("schema")
	_ = validateCommand.MarkFlagRequired("json")

	rootCmd.AddCommand(validateCommand)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	err := schemas.ValidateJSON(schemas.ResolveSchemaLocation(validateSchemaPath), validateJSONPath)
	if err == nil {
		_, _ = fmt.Fprintf(out, "Validation passed: %s\n", validateJSONPath)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(out, "Validation failed: %s\n", validateJSONPath)
		for _, fieldErr := range validationErr.Errors {
			_, _ = fmt.Fprintf(out, "  %s: %s\n", fieldErr.Field, fieldErr.Message)
		}
		return fmt.Errorf("%d schema violations", len(validationErr.Errors))
	}
	return err
}
