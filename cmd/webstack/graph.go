package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-webstack-go/internal/graph"
)

type graphOptions struct {
	stack             string
	format            string
	includeParameters bool
	includeOutputs    bool
	clusterByType     bool
	showReasons       bool
}

func newGraphCmd(global *globalOptions) *cobra.Command {
	opts := graphOptions{}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate a graph of a stack's resource dependencies",
		Long: `Generate a DOT or Mermaid graph of the explicit dependency edges of a
composed stack.

The output can be rendered with Graphviz:
    webstack graph --stack blog | dot -Tpng -o blog.png

Or used in GitHub markdown (Mermaid format):
    webstack graph --stack blog -f mermaid

Examples:
    webstack graph --stack blog -p          # include parameters
    webstack graph --stack blog -c          # cluster by service
    webstack graph --stack blog --reasons   # label edges`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(global)
			if err != nil {
				return err
			}
			return runGraph(cmd, env, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.stack, "stack", "s", "", "Stack (appName) to graph")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&opts.includeParameters, "include-parameters", "p", false, "Include parameter nodes in the graph")
	cmd.Flags().BoolVar(&opts.includeOutputs, "include-outputs", false, "Include stack outputs in the graph")
	cmd.Flags().BoolVarP(&opts.clusterByType, "cluster", "c", false, "Cluster resources by AWS service")
	cmd.Flags().BoolVar(&opts.showReasons, "reasons", false, "Label edges with the reason they were declared")

	return cmd
}

func runGraph(cmd *cobra.Command, env *environment, opts graphOptions) error {
	var format graph.Format
	switch opts.format {
	case "dot":
		format = graph.FormatDOT
	case "mermaid":
		format = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", opts.format)
	}

	stack, err := env.composeOne(cmd.Context(), opts.stack, false)
	if err != nil {
		return err
	}

	gen := &graph.Generator{
		Format:            format,
		IncludeParameters: opts.includeParameters,
		IncludeOutputs:    opts.includeOutputs,
		ClusterByType:     opts.clusterByType,
		ShowReasons:       opts.showReasons,
	}
	return gen.Generate(stack.Graph, cmd.OutOrStdout())
}
