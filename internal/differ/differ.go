// Package differ compares two CloudFormation templates: typically the
// one a stack was last deployed with and the one composed now.
package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	webstack "github.com/lex00/wetwire-webstack-go"
)

// OutputType is the DiffEntry type used for stack outputs.
const OutputType = "Output"

// Options configures the differ.
type Options struct {
	// IgnoreOrder ignores array element order in comparisons.
	IgnoreOrder bool
}

// Result contains the difference between two templates.
type Result struct {
	Diff    webstack.TemplateDiff `json:"diff"`
	Summary webstack.DiffSummary  `json:"summary"`
}

// HasChanges reports whether the templates differ.
func (r *Result) HasChanges() bool {
	return r.Summary.Total > 0
}

// Compare compares two templates and returns the differences going from
// template1 to template2.
func Compare(template1, template2 *webstack.Template, opts Options) (*Result, error) {
	t1, err := canonical(template1)
	if err != nil {
		return nil, err
	}
	t2, err := canonical(template2)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	res1, res2 := t1.Resources, t2.Resources

	for name, def := range res2 {
		if _, exists := res1[name]; !exists {
			result.Diff.Added = append(result.Diff.Added, webstack.DiffEntry{Resource: name, Type: def.Type})
		}
	}
	for name, def := range res1 {
		if _, exists := res2[name]; !exists {
			result.Diff.Removed = append(result.Diff.Removed, webstack.DiffEntry{Resource: name, Type: def.Type})
		}
	}
	for name, def1 := range res1 {
		if def2, exists := res2[name]; exists {
			if changes := compareResources(def1, def2, opts); len(changes) > 0 {
				result.Diff.Modified = append(result.Diff.Modified, webstack.DiffEntry{
					Resource: name,
					Type:     def1.Type,
					Changes:  changes,
				})
			}
		}
	}

	compareOutputs(t1.Outputs, t2.Outputs, &result.Diff, opts)

	sortEntries(result.Diff.Added)
	sortEntries(result.Diff.Removed)
	sortEntries(result.Diff.Modified)

	result.Summary = webstack.DiffSummary{
		Added:    len(result.Diff.Added),
		Removed:  len(result.Diff.Removed),
		Modified: len(result.Diff.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified

	return result, nil
}

// CompareFiles compares two template files.
func CompareFiles(file1, file2 string, opts Options) (*Result, error) {
	t1, err := LoadTemplate(file1)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file1, err)
	}

	t2, err := LoadTemplate(file2)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file2, err)
	}

	return Compare(t1, t2, opts)
}

// LoadTemplate loads a CloudFormation template from a JSON or YAML file.
func LoadTemplate(path string) (*webstack.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTemplate(data)
}

// ParseTemplate decodes a JSON or YAML template.
func ParseTemplate(data []byte) (*webstack.Template, error) {
	var template webstack.Template

	// Try JSON first
	if err := json.Unmarshal(data, &template); err != nil {
		template = webstack.Template{}
		if err := yaml.Unmarshal(data, &template); err != nil {
			return nil, fmt.Errorf("failed to parse as JSON or YAML: %w", err)
		}
	}

	return &template, nil
}

// canonical round-trips a template through JSON so templates built in
// memory and templates read from YAML compare equal.
func canonical(t *webstack.Template) (*webstack.Template, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("normalizing template: %w", err)
	}
	var out webstack.Template
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("normalizing template: %w", err)
	}
	return &out, nil
}

// compareResources compares two resource definitions and returns changes.
func compareResources(def1, def2 webstack.ResourceDef, opts Options) []string {
	var changes []string

	if def1.Type != def2.Type {
		changes = append(changes, fmt.Sprintf("Type changed: %s → %s", def1.Type, def2.Type))
	}

	changes = append(changes, compareProperties("", def1.Properties, def2.Properties, opts)...)

	if !equalStringSets(def1.DependsOn, def2.DependsOn) {
		changes = append(changes, "DependsOn changed")
	}

	return changes
}

func compareOutputs(out1, out2 map[string]webstack.Output, diff *webstack.TemplateDiff, opts Options) {
	for name := range out2 {
		if _, exists := out1[name]; !exists {
			diff.Added = append(diff.Added, webstack.DiffEntry{Resource: name, Type: OutputType})
		}
	}
	for name, o1 := range out1 {
		o2, exists := out2[name]
		if !exists {
			diff.Removed = append(diff.Removed, webstack.DiffEntry{Resource: name, Type: OutputType})
			continue
		}
		var changes []string
		if !deepEqual(o1.Value, o2.Value, opts) {
			changes = append(changes, "Value modified")
		}
		if exportName(o1) != exportName(o2) {
			changes = append(changes, fmt.Sprintf("Export changed: %q → %q", exportName(o1), exportName(o2)))
		}
		if len(changes) > 0 {
			diff.Modified = append(diff.Modified, webstack.DiffEntry{Resource: name, Type: OutputType, Changes: changes})
		}
	}
}

func exportName(o webstack.Output) string {
	if o.Export == nil {
		return ""
	}
	return o.Export.Name
}

// compareProperties recursively compares property maps.
func compareProperties(prefix string, props1, props2 map[string]any, opts Options) []string {
	var changes []string

	for key, val2 := range props2 {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		val1, exists := props1[key]
		if !exists {
			changes = append(changes, fmt.Sprintf("%s added", path))
			continue
		}
		m1, ok1 := val1.(map[string]any)
		m2, ok2 := val2.(map[string]any)
		if ok1 && ok2 && !isIntrinsic(m1) && !isIntrinsic(m2) {
			changes = append(changes, compareProperties(path, m1, m2, opts)...)
			continue
		}
		if !deepEqual(val1, val2, opts) {
			changes = append(changes, fmt.Sprintf("%s modified", path))
		}
	}

	for key := range props1 {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if _, exists := props2[key]; !exists {
			changes = append(changes, fmt.Sprintf("%s removed", path))
		}
	}

	sort.Strings(changes)
	return changes
}

// isIntrinsic reports whether m is a single-key intrinsic function.
func isIntrinsic(m map[string]any) bool {
	if len(m) != 1 {
		return false
	}
	for k := range m {
		return k == "Ref" || k == "Condition" || len(k) > 4 && k[:4] == "Fn::"
	}
	return false
}

// deepEqual compares two values deeply, optionally ignoring order.
func deepEqual(a, b any, opts Options) bool {
	if opts.IgnoreOrder {
		a = normalizeValue(a)
		b = normalizeValue(b)
	}
	return reflect.DeepEqual(a, b)
}

// normalizeValue sorts slices by their JSON encoding so element order
// does not matter.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []any:
		result := make([]any, len(val))
		for i, elem := range val {
			result[i] = normalizeValue(elem)
		}
		sort.SliceStable(result, func(i, j int) bool {
			return sortKey(result[i]) < sortKey(result[j])
		})
		return result
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[k] = normalizeValue(v)
		}
		return result
	default:
		return v
	}
}

func sortKey(v any) string {
	data, _ := json.Marshal(v)
	return string(data)
}

// equalStringSets compares two string slices ignoring order.
func equalStringSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	a = append([]string(nil), a...)
	b = append([]string(nil), b...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sortEntries sorts diff entries by resource name.
func sortEntries(entries []webstack.DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Resource < entries[j].Resource
	})
}
