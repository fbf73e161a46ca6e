// Package imports is the import layer: it resolves references to the
// pre-existing shared infrastructure (VPC, cluster, load balancer,
// hosted zone, gateway, file system) that a web stack builds on.
//
// The composer only ever consumes the resolved References; it never
// looks anything up itself.
package imports

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

// Value is a reference to a pre-existing value. Exactly one of its
// fields is set, or none when the value is absent.
//
// In YAML a Value is written as a scalar literal, or as a mapping naming
// its source:
//
//	vpcId: vpc-0a1b2c3d
//	clusterName: {export: core-cluster-name}
//	hostPort: {ssm: /blog/host-port}
type Value struct {
	// Literal is used verbatim.
	Literal string
	// Export is the name of a CloudFormation export (Fn::ImportValue).
	Export string
	// SSM is the path of an SSM String parameter, resolved by
	// CloudFormation at deploy time.
	SSM string
}

// Literal returns a literal Value.
func Literal(s string) Value { return Value{Literal: s} }

// LiteralInt returns a literal numeric Value.
func LiteralInt(i int) Value { return Value{Literal: strconv.Itoa(i)} }

// Export returns a Value read from a CloudFormation export.
func Export(name string) Value { return Value{Export: name} }

// SSM returns a Value read from an SSM parameter.
func SSM(path string) Value { return Value{SSM: path} }

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool {
	return v.Literal == "" && v.Export == "" && v.SSM == ""
}

// IsLiteral reports whether the value is known at composition time.
func (v Value) IsLiteral() bool {
	return v.Literal != ""
}

// Property returns the value in CloudFormation property form.
func (v Value) Property() any {
	switch {
	case v.Export != "":
		return intrinsics.ImportValue{ExportName: v.Export}
	case v.SSM != "":
		return intrinsics.ResolveSSM(v.SSM)
	default:
		return v.Literal
	}
}

// Int parses a literal value as a number.
func (v Value) Int() (int, error) {
	if !v.IsLiteral() {
		return 0, fmt.Errorf("%s is not a literal", v)
	}
	return strconv.Atoi(v.Literal)
}

// String describes the value for error messages.
func (v Value) String() string {
	switch {
	case v.Export != "":
		return "export " + v.Export
	case v.SSM != "":
		return "ssm " + v.SSM
	case v.Literal != "":
		return v.Literal
	default:
		return "<unset>"
	}
}

// MarshalJSON serializes the value in CloudFormation property form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Property())
}

// UnmarshalYAML accepts a scalar or an {export: ...} / {ssm: ...} mapping.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = Value{Literal: node.Value}
		return nil
	case yaml.MappingNode:
		var src struct {
			Export string `yaml:"export"`
			SSM    string `yaml:"ssm"`
		}
		if err := node.Decode(&src); err != nil {
			return err
		}
		if (src.Export == "") == (src.SSM == "") {
			return fmt.Errorf("line %d: value must set exactly one of export or ssm", node.Line)
		}
		*v = Value{Export: src.Export, SSM: src.SSM}
		return nil
	default:
		return fmt.Errorf("line %d: value must be a scalar or a mapping", node.Line)
	}
}

// MarshalYAML writes the value back in the form UnmarshalYAML reads.
func (v Value) MarshalYAML() (any, error) {
	switch {
	case v.Export != "":
		return map[string]string{"export": v.Export}, nil
	case v.SSM != "":
		return map[string]string{"ssm": v.SSM}, nil
	default:
		return v.Literal, nil
	}
}
