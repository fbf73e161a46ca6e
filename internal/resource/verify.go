package resource

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var subVariable = regexp.MustCompile(`\$\{([^!}][^}]*)\}`)

// References returns the logical IDs a value refers to through Ref,
// Fn::GetAtt or Fn::Sub variables, sorted and deduplicated. Pseudo
// parameters are excluded.
func References(v any) ([]string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	found := make(map[string]bool)
	collectRefs(doc, found)

	out := make([]string, 0, len(found))
	for id := range found {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func collectRefs(v any, found map[string]bool) {
	switch t := v.(type) {
	case map[string]any:
		if ref, ok := t["Ref"].(string); ok && len(t) == 1 {
			addRef(ref, found)
			return
		}
		if att, ok := t["Fn::GetAtt"]; ok && len(t) == 1 {
			switch a := att.(type) {
			case []any:
				if len(a) > 0 {
					if id, ok := a[0].(string); ok {
						addRef(id, found)
					}
				}
			case string:
				addRef(strings.SplitN(a, ".", 2)[0], found)
			}
			return
		}
		if sub, ok := t["Fn::Sub"]; ok && len(t) == 1 {
			collectSub(sub, found)
			return
		}
		for _, val := range t {
			collectRefs(val, found)
		}
	case []any:
		for _, val := range t {
			collectRefs(val, found)
		}
	}
}

func collectSub(sub any, found map[string]bool) {
	var (
		str  string
		vars map[string]any
	)
	switch s := sub.(type) {
	case string:
		str = s
	case []any:
		if len(s) > 0 {
			str, _ = s[0].(string)
		}
		if len(s) > 1 {
			vars, _ = s[1].(map[string]any)
			collectRefs(s[1], found)
		}
	}
	for _, m := range subVariable.FindAllStringSubmatch(str, -1) {
		name := strings.SplitN(m[1], ".", 2)[0]
		if _, local := vars[name]; local {
			continue
		}
		addRef(name, found)
	}
}

func addRef(id string, found map[string]bool) {
	if strings.HasPrefix(id, "AWS::") {
		return
	}
	found[id] = true
}

// Verify checks that the graph is acyclic, that every reference a node
// or output makes is to a known node or parameter, and that every
// reference to a node is backed by an explicit edge.
func (g *Graph) Verify() error {
	if _, err := g.Order(); err != nil {
		return err
	}

	for _, n := range g.Nodes() {
		refs, err := References(n.Properties)
		if err != nil {
			return fmt.Errorf("%s: %w", n.LogicalID, err)
		}
		for _, ref := range refs {
			if _, ok := g.parameters[ref]; ok {
				continue
			}
			if _, ok := g.nodes[ref]; !ok {
				return fmt.Errorf("%s references unknown resource %s", n.LogicalID, ref)
			}
			if _, ok := g.deps[n.LogicalID][ref]; !ok {
				return fmt.Errorf("%s references %s without a declared dependency", n.LogicalID, ref)
			}
		}
	}

	for _, o := range g.Outputs() {
		refs, err := References(o.Value)
		if err != nil {
			return fmt.Errorf("output %s: %w", o.Name, err)
		}
		declared := make(map[string]bool, len(o.DependsOn))
		for _, dep := range o.DependsOn {
			declared[dep] = true
		}
		for _, ref := range refs {
			if _, ok := g.parameters[ref]; ok {
				continue
			}
			if _, ok := g.nodes[ref]; !ok {
				return fmt.Errorf("output %s references unknown resource %s", o.Name, ref)
			}
			if !declared[ref] {
				return fmt.Errorf("output %s references %s without a declared dependency", o.Name, ref)
			}
		}
	}
	return nil
}
