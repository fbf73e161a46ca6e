// Package template renders a composed stack as a CloudFormation template.
package template

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	webstack "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/compose"
)

// FormatVersion is the CloudFormation template format version.
const FormatVersion = "2010-09-09"

// Builder constructs a CloudFormation template from a composed stack.
type Builder struct {
	stack       *compose.Stack
	description string
}

// NewBuilder creates a template builder for stack.
func NewBuilder(stack *compose.Stack) *Builder {
	return &Builder{
		stack:       stack,
		description: fmt.Sprintf("webstack %s (%s)", stack.Name, stack.DNSName),
	}
}

// WithDescription overrides the template description.
func (b *Builder) WithDescription(desc string) *Builder {
	b.description = desc
	return b
}

// Build renders the template. Every graph edge becomes a DependsOn
// entry, sorted.
func (b *Builder) Build() (*webstack.Template, error) {
	g := b.stack.Graph

	// Order fails on cycles; the template would be rejected anyway.
	order, err := g.Order()
	if err != nil {
		return nil, err
	}

	template := &webstack.Template{
		AWSTemplateFormatVersion: FormatVersion,
		Description:              b.description,
		Resources:                make(map[string]webstack.ResourceDef, len(order)),
	}

	if params := g.Parameters(); len(params) > 0 {
		template.Parameters = make(map[string]webstack.Parameter, len(params))
		for name, p := range params {
			template.Parameters[name] = p
		}
	}

	for _, id := range order {
		node, _ := g.Node(id)

		props, err := serializeResource(node.Properties)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", id, err)
		}

		template.Resources[id] = webstack.ResourceDef{
			Type:       node.Type(),
			Properties: props,
			DependsOn:  g.Dependencies(id),
		}
	}

	if outputs := g.Outputs(); len(outputs) > 0 {
		template.Outputs = make(map[string]webstack.Output, len(outputs))
		for _, o := range outputs {
			value, err := normalize(o.Value)
			if err != nil {
				return nil, fmt.Errorf("serializing output %s: %w", o.Name, err)
			}
			out := webstack.Output{Description: o.Description, Value: value}
			if o.ExportName != "" {
				out.Export = &webstack.Export{Name: o.ExportName}
			}
			template.Outputs[o.Name] = out
		}
	}

	return template, nil
}

// Build renders stack with the default description.
func Build(stack *compose.Stack) (*webstack.Template, error) {
	return NewBuilder(stack).Build()
}

// serializeResource converts a property struct to CloudFormation
// properties, going through JSON so intrinsics take their template form.
func serializeResource(value any) (map[string]any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	var props map[string]any
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, err
	}
	return props, nil
}

func normalize(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToJSON serializes the template to indented JSON.
func ToJSON(t *webstack.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *webstack.Template) ([]byte, error) {
	return yaml.Marshal(t)
}

// Render serializes the template in the named format ("json" or "yaml").
func Render(t *webstack.Template, format string) ([]byte, error) {
	switch format {
	case "", "json":
		return ToJSON(t)
	case "yaml":
		return ToYAML(t)
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
