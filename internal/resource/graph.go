// Package resource holds the composed resource graph: typed nodes keyed
// by logical ID and the explicit dependency edges between them.
//
// Edges are never inferred from declaration order or from property
// references. Verify checks that every reference a node makes to
// another node is backed by an edge, so the ordering the convergence
// engine sees is exactly the one declared here.
package resource

import (
	"fmt"
	"sort"
	"strings"

	webstack "github.com/lex00/wetwire-webstack-go"
)

// Role is a semantic tag for a node (e.g. "subnet", "listener-rule").
type Role string

// Node is one resource in the graph.
type Node struct {
	LogicalID  string
	Role       Role
	Properties webstack.Resource
}

// Type returns the CloudFormation resource type.
func (n *Node) Type() string {
	return n.Properties.ResourceType()
}

// Edge records that From must be created after To.
type Edge struct {
	From   string
	To     string
	Reason string
}

// Output is a named result of the stack.
type Output struct {
	Name        string
	Description string
	Value       any
	ExportName  string
	// DependsOn lists the nodes that must converge before the output is
	// meaningful.
	DependsOn []string
}

// Graph is a directed acyclic graph of resource nodes.
type Graph struct {
	nodes      map[string]*Node
	deps       map[string]map[string]string
	parameters map[string]webstack.Parameter
	outputs    map[string]Output
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:      make(map[string]*Node),
		deps:       make(map[string]map[string]string),
		parameters: make(map[string]webstack.Parameter),
		outputs:    make(map[string]Output),
	}
}

// Add inserts a node. Logical IDs must be unique across nodes and
// parameters.
func (g *Graph) Add(id string, role Role, props webstack.Resource) (*Node, error) {
	if id == "" {
		return nil, fmt.Errorf("empty logical ID for %s", props.ResourceType())
	}
	if g.exists(id) {
		return nil, fmt.Errorf("duplicate logical ID %s", id)
	}
	n := &Node{LogicalID: id, Role: role, Properties: props}
	g.nodes[id] = n
	g.deps[id] = make(map[string]string)
	return n, nil
}

func (g *Graph) exists(id string) bool {
	_, node := g.nodes[id]
	_, param := g.parameters[id]
	return node || param
}

// DependOn declares that from is created after to.
func (g *Graph) DependOn(from, to, reason string) error {
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("dependency from unknown node %s", from)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("%s depends on unknown node %s", from, to)
	}
	if from == to {
		return fmt.Errorf("%s cannot depend on itself", from)
	}
	g.deps[from][to] = reason
	return nil
}

// Node returns the node with the given logical ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by logical ID.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogicalID < out[j].LogicalID })
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// ByRole returns the nodes with the given role, sorted by logical ID.
func (g *Graph) ByRole(role Role) []*Node {
	var out []*Node
	for _, n := range g.Nodes() {
		if n.Role == role {
			out = append(out, n)
		}
	}
	return out
}

// Dependencies returns the direct dependencies of id, sorted.
func (g *Graph) Dependencies(id string) []string {
	out := make([]string, 0, len(g.deps[id]))
	for to := range g.deps[id] {
		out = append(out, to)
	}
	sort.Strings(out)
	return out
}

// Reason returns why from depends on to, and whether the edge exists.
func (g *Graph) Reason(from, to string) (string, bool) {
	r, ok := g.deps[from][to]
	return r, ok
}

// Edges returns every edge sorted by (From, To).
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, n := range g.Nodes() {
		for _, to := range g.Dependencies(n.LogicalID) {
			out = append(out, Edge{From: n.LogicalID, To: to, Reason: g.deps[n.LogicalID][to]})
		}
	}
	return out
}

// HasPath reports whether from transitively depends on to.
func (g *Graph) HasPath(from, to string) bool {
	seen := make(map[string]bool)
	var walk func(string) bool
	walk = func(id string) bool {
		if seen[id] {
			return false
		}
		seen[id] = true
		for dep := range g.deps[id] {
			if dep == to || walk(dep) {
				return true
			}
		}
		return false
	}
	return walk(from)
}

// AddParameter declares a template parameter.
func (g *Graph) AddParameter(name string, p webstack.Parameter) error {
	if g.exists(name) {
		return fmt.Errorf("duplicate logical ID %s", name)
	}
	g.parameters[name] = p
	return nil
}

// Parameters returns the declared template parameters.
func (g *Graph) Parameters() map[string]webstack.Parameter {
	return g.parameters
}

// AddOutput declares a stack output. Its dependencies must be nodes.
func (g *Graph) AddOutput(o Output) error {
	if _, ok := g.outputs[o.Name]; ok {
		return fmt.Errorf("duplicate output %s", o.Name)
	}
	for _, dep := range o.DependsOn {
		if _, ok := g.nodes[dep]; !ok {
			return fmt.Errorf("output %s depends on unknown node %s", o.Name, dep)
		}
	}
	sort.Strings(o.DependsOn)
	g.outputs[o.Name] = o
	return nil
}

// Outputs returns the declared outputs sorted by name.
func (g *Graph) Outputs() []Output {
	out := make([]Output, 0, len(g.outputs))
	for _, o := range g.outputs {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Order returns logical IDs in dependency order: every node appears
// after all of its dependencies. Ties are broken by logical ID.
func (g *Graph) Order() ([]string, error) {
	dependents := make(map[string][]string)
	inDegree := make(map[string]int)

	for id := range g.nodes {
		inDegree[id] = len(g.deps[id])
		for dep := range g.deps[id] {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	// Kahn's algorithm
	var queue []string
	for id, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	var result []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, id)

		for _, next := range dependents[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, g.detectCycle()
	}
	return result, nil
}

// detectCycle finds one cycle and reports it as a path.
func (g *Graph) detectCycle() error {
	visited := make(map[string]bool)
	onPath := make(map[string]bool)

	var cycle []string
	var find func(id string) bool
	find = func(id string) bool {
		visited[id] = true
		onPath[id] = true
		for _, dep := range g.Dependencies(id) {
			if !visited[dep] {
				if find(dep) {
					cycle = append([]string{id}, cycle...)
					return true
				}
			} else if onPath[dep] {
				cycle = []string{id, dep}
				return true
			}
		}
		onPath[id] = false
		return false
	}

	for _, n := range g.Nodes() {
		if !visited[n.LogicalID] && find(n.LogicalID) {
			break
		}
	}

	if len(cycle) == 0 {
		return fmt.Errorf("circular dependency detected")
	}
	// Trim the lead-in so the path starts and ends at the same node.
	last := cycle[len(cycle)-1]
	for i, id := range cycle {
		if id == last {
			cycle = cycle[i:]
			break
		}
	}
	return fmt.Errorf("circular dependency detected: %s", strings.Join(cycle, " -> "))
}
