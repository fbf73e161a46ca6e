package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	webstack "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/compose"
)

func newListCmd(global *globalOptions) *cobra.Command {
	var (
		stack        string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the resources a stack composes",
		Long: `List composes the selected stacks and prints their resources in the order
the convergence engine may create them.

Examples:
    webstack list --stack blog
    webstack list --format json`,
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
			for _, s := range stacks {
				result, err := listStack(s)
				if err != nil {
					return err
				}
				if err := outputListResult(cmd.OutOrStdout(), *result, outputFormat); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&stack, "stack", "s", "", "Stack (appName) to list (default: all)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func listStack(stack *compose.Stack) (*webstack.ListResult, error) {
	order, err := stack.Graph.Order()
	if err != nil {
		return nil, err
	}

	result := &webstack.ListResult{
		Stack:     stack.Name,
		Resources: make([]webstack.ListResource, 0, len(order)),
	}
	for _, id := range order {
		n, _ := stack.Graph.Node(id)
		result.Resources = append(result.Resources, webstack.ListResource{
			Name:      id,
			Type:      n.Type(),
			Role:      string(n.Role),
			DependsOn: stack.Graph.Dependencies(id),
		})
	}
	return result, nil
}

func outputListResult(w io.Writer, result webstack.ListResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if len(result.Resources) == 0 {
			fmt.Fprintf(w, "Stack %s: no resources.\n", result.Stack)
			return nil
		}

		fmt.Fprintf(w, "Stack %s (%d resources):\n\n", result.Stack, len(result.Resources))
		for _, res := range result.Resources {
			line := fmt.Sprintf("  %s: %s", res.Name, res.Type)
			if len(res.DependsOn) > 0 {
				line += " <- " + strings.Join(res.DependsOn, ", ")
			}
			fmt.Fprintln(w, line)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
