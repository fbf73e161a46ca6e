package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-webstack-go/internal/compose"
	"github.com/lex00/wetwire-webstack-go/internal/template"
)

type buildOptions struct {
	stack   string
	format  string
	output  string
	resolve bool
}

func newBuildCmd(global *globalOptions) *cobra.Command {
	opts := buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate CloudFormation templates for the deployment's stacks",
		Long: `Build checks the deployment for address and priority collisions, resolves
imported values and composes each stack into a CloudFormation template.

Imports are emitted as Fn::ImportValue and SSM dynamic references without
contacting AWS unless --resolve is given.

Examples:
    webstack build --stack blog
    webstack build --stack blog -f yaml -o blog.yaml
    webstack build -o templates/          # one file per stack
    webstack build --resolve              # check every import exists`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(global)
			if err != nil {
				return err
			}
			return runBuild(cmd, env, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.stack, "stack", "s", "", "Stack (appName) to build (default: all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file, or directory when building several stacks (default: stdout)")
	cmd.Flags().BoolVar(&opts.resolve, "resolve", false, "Resolve imports against AWS")

	return cmd
}

func runBuild(cmd *cobra.Command, env *environment, opts buildOptions) error {
	if opts.format != "json" && opts.format != "yaml" {
		return fmt.Errorf("unknown format: %s", opts.format)
	}

	stacks, err := env.compose(cmd.Context(), opts.stack, opts.resolve)
	if err != nil {
		return err
	}

	return writeTemplates(cmd.OutOrStdout(), stacks, opts.format, opts.output)
}

// writeTemplates renders stacks to out, to a single file or to one
// <appName>.<format> file per stack in a directory.
func writeTemplates(out io.Writer, stacks []*compose.Stack, format, output string) error {
	toDir := len(stacks) > 1
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		toDir = true
	}

	if output == "" && len(stacks) > 1 {
		return fmt.Errorf("%d stacks selected: use --stack or --output <dir>", len(stacks))
	}
	if toDir {
		if err := os.MkdirAll(output, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
	}

	for _, stack := range stacks {
		tmpl, err := template.Build(stack)
		if err != nil {
			return fmt.Errorf("stack %s: %w", stack.Name, err)
		}
		data, err := template.Render(tmpl, format)
		if err != nil {
			return err
		}

		switch {
		case output == "":
			fmt.Fprintln(out, string(data))
		case toDir:
			path := filepath.Join(output, stack.Name+"."+format)
			if err := os.WriteFile(path, data, 0644); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s (%d resources)\n", path, stack.Graph.Len())
		default:
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s (%d resources)\n", output, stack.Graph.Len())
		}
	}
	return nil
}
