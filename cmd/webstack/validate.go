package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	webstack "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/validation"
)

var errValidationFailed = errors.New("validation failed")

// newValidateCmd creates the "validate" subcommand.
func newValidateCmd(global *globalOptions) *cobra.Command {
	var (
		stack        string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate composed stacks",
		Long: `Validate composes the selected stacks and checks them.

Checks performed:
  - Configuration and imports: every required value is present
  - Collisions: no two stacks share a subnet block or listener priority
  - Dependency graph: acyclic, and every reference has an explicit edge
  - cfn-lint: the rendered template passes cfn-lint-go

Examples:
    webstack validate
    webstack validate --stack blog --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(global)
			if err != nil {
				return err
			}
			stacks, err := env.compose(cmd.Context(), stack, false)
			if err != nil {
				return err
			}

			failed := false
			for _, s := range stacks {
				result, err := validation.ValidateStack(s)
				if err != nil {
					return err
				}
				if err := outputValidateResult(cmd.OutOrStdout(), *result, outputFormat); err != nil {
					return err
				}
				failed = failed || !result.Success
			}
			if failed {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&stack, "stack", "s", "", "Stack (appName) to validate (default: all)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func outputValidateResult(w io.Writer, result webstack.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if result.Success {
			fmt.Fprintf(w, "%s: validation passed: %d resources OK\n", result.Stack, result.Resources)
		} else {
			fmt.Fprintf(w, "%s: validation FAILED:\n", result.Stack)
		}
		for _, errMsg := range result.Errors {
			fmt.Fprintf(w, "  ERROR: %s\n", errMsg)
		}
		for _, warnMsg := range result.Warnings {
			fmt.Fprintf(w, "  WARNING: %s\n", warnMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
