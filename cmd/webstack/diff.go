package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	webstack "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/differ"
	"github.com/lex00/wetwire-webstack-go/internal/engine"
	"github.com/lex00/wetwire-webstack-go/internal/template"
)

type diffOptions struct {
	stack       string
	format      string
	ignoreOrder bool
	deployed    bool
}

func newDiffCmd(global *globalOptions) *cobra.Command {
	opts := diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff [previous-template]",
		Short: "Compare a composed stack against a previous template",
		Long: `Diff composes a stack and compares its template with a previous one, either
a template file (JSON or YAML) or, with --deployed, the template of the
stack currently deployed in CloudFormation.

Examples:
    webstack diff blog.json --stack blog
    webstack diff --deployed --stack blog
    webstack diff old.yaml --ignore-order -f json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == opts.deployed {
				return fmt.Errorf("give either a previous template file or --deployed")
			}
			env, err := loadEnvironment(global)
			if err != nil {
				return err
			}
			previous := ""
			if len(args) == 1 {
				previous = args[0]
			}
			return runDiff(cmd, env, previous, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.stack, "stack", "s", "", "Stack (appName) to compare")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&opts.ignoreOrder, "ignore-order", false, "Ignore the order of list elements")
	cmd.Flags().BoolVar(&opts.deployed, "deployed", false, "Compare against the deployed stack's template")

	return cmd
}

func runDiff(cmd *cobra.Command, env *environment, previous string, opts diffOptions) error {
	stack, err := env.composeOne(cmd.Context(), opts.stack, false)
	if err != nil {
		return err
	}
	current, err := template.Build(stack)
	if err != nil {
		return err
	}

	var old *webstack.Template
	if opts.deployed {
		sess, err := env.session()
		if err != nil {
			return err
		}
		body, err := engine.NewCloudFormation(sess, env.log).Template(cmd.Context(), stack.Name)
		if err != nil {
			return err
		}
		old, err = differ.ParseTemplate(body)
		if err != nil {
			return fmt.Errorf("parsing deployed template: %w", err)
		}
	} else {
		old, err = differ.LoadTemplate(previous)
		if err != nil {
			return err
		}
	}

	result, err := differ.Compare(old, current, differ.Options{IgnoreOrder: opts.ignoreOrder})
	if err != nil {
		return err
	}
	return outputDiffResult(cmd.OutOrStdout(), result, opts.format)
}

func outputDiffResult(w io.Writer, result *differ.Result, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if !result.HasChanges() {
			fmt.Fprintln(w, "No changes.")
			return nil
		}
		for _, e := range result.Diff.Added {
			fmt.Fprintf(w, "+ %s (%s)\n", e.Resource, e.Type)
		}
		for _, e := range result.Diff.Removed {
			fmt.Fprintf(w, "- %s (%s)\n", e.Resource, e.Type)
		}
		for _, e := range result.Diff.Modified {
			fmt.Fprintf(w, "~ %s (%s)\n", e.Resource, e.Type)
			for _, c := range e.Changes {
				fmt.Fprintf(w, "    %s\n", c)
			}
		}
		s := result.Summary
		fmt.Fprintf(w, "\n%d changes: %d added, %d removed, %d modified\n", s.Total, s.Added, s.Removed, s.Modified)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
