// Package graph renders the dependency graph of a composed stack in DOT
// or Mermaid format.
package graph

import (
	"io"
	"sort"
	"strings"

	"github.com/emicklei/dot"

	"github.com/lex00/wetwire-webstack-go/internal/resource"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates dependency graphs from a resource graph.
type Generator struct {
	// IncludeParameters adds template parameters and the edges of the
	// nodes that reference them.
	IncludeParameters bool

	// IncludeOutputs adds stack outputs and their dependencies.
	IncludeOutputs bool

	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByType groups resources by AWS service.
	ClusterByType bool

	// ShowReasons labels each edge with the reason it was declared.
	ShowReasons bool
}

// Generate renders g and writes it to w.
func (gen *Generator) Generate(g *resource.Graph, w io.Writer) error {
	graph := gen.buildGraph(g)

	var output string
	if gen.Format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := io.WriteString(w, output)
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (gen *Generator) GenerateString(g *resource.Graph) (string, error) {
	var sb strings.Builder
	if err := gen.Generate(g, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (gen *Generator) buildGraph(g *resource.Graph) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	nodes := make(map[string]dot.Node)
	if gen.ClusterByType {
		gen.addClusteredNodes(graph, g, nodes)
	} else {
		for _, n := range g.Nodes() {
			nodes[n.LogicalID] = addNode(graph, n)
		}
	}

	for _, e := range g.Edges() {
		edge := graph.Edge(nodes[e.From], nodes[e.To])
		if gen.ShowReasons && e.Reason != "" {
			edge.Label(e.Reason)
		}
	}

	if gen.IncludeParameters {
		gen.addParameters(graph, g, nodes)
	}

	if gen.IncludeOutputs {
		for _, o := range g.Outputs() {
			out := graph.Node("output:" + o.Name)
			out.Attr("shape", "ellipse")
			out.Attr("style", "bold")
			out.Label(o.Name)
			for _, dep := range o.DependsOn {
				graph.Edge(out, nodes[dep]).Attr("style", "dashed")
			}
		}
	}

	return graph
}

// addParameters draws parameters as dashed ellipses with an edge from
// every node that references them.
func (gen *Generator) addParameters(graph *dot.Graph, g *resource.Graph, nodes map[string]dot.Node) {
	params := g.Parameters()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	paramNodes := make(map[string]dot.Node, len(names))
	for _, name := range names {
		n := graph.Node(name)
		n.Attr("shape", "ellipse")
		n.Attr("style", "dashed")
		n.Label(name)
		paramNodes[name] = n
	}

	for _, n := range g.Nodes() {
		refs, err := resource.References(n.Properties)
		if err != nil {
			continue
		}
		for _, ref := range refs {
			if p, ok := paramNodes[ref]; ok {
				graph.Edge(nodes[n.LogicalID], p).Attr("style", "dashed")
			}
		}
	}
}

// addClusteredNodes adds nodes grouped by AWS service.
func (gen *Generator) addClusteredNodes(graph *dot.Graph, g *resource.Graph, nodes map[string]dot.Node) {
	byService := make(map[string][]*resource.Node)
	var services []string
	for _, n := range g.Nodes() {
		svc := extractService(n.Type())
		if _, ok := byService[svc]; !ok {
			services = append(services, svc)
		}
		byService[svc] = append(byService[svc], n)
	}
	sort.Strings(services)

	for _, svc := range services {
		members := byService[svc]
		if len(members) == 1 {
			nodes[members[0].LogicalID] = addNode(graph, members[0])
			continue
		}
		cluster := graph.Subgraph("cluster_"+svc, dot.ClusterOption{})
		cluster.Attr("label", svc)
		cluster.Attr("style", "rounded")
		cluster.Attr("bgcolor", "lightyellow")
		for _, n := range members {
			nodes[n.LogicalID] = addNode(cluster, n)
		}
	}
}

func addNode(graph *dot.Graph, n *resource.Node) dot.Node {
	node := graph.Node(n.LogicalID)
	node.Label(n.LogicalID + "\\n[" + n.Type() + "]")
	return node
}

// extractService extracts the service from a CloudFormation type.
// e.g., "AWS::EC2::Subnet" -> "EC2"
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	return "Other"
}
