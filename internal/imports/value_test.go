package imports

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValue_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Value
		wantErr  bool
	}{
		{"literal", `v: vpc-123`, Literal("vpc-123"), false},
		{"number", `v: 8080`, Literal("8080"), false},
		{"export", `v: {export: core-vpc-id}`, Export("core-vpc-id"), false},
		{"ssm", `v: {ssm: /core/listener}`, SSM("/core/listener"), false},
		{"both", `v: {export: a, ssm: /b}`, Value{}, true},
		{"neither", `v: {}`, Value{}, true},
		{"sequence", `v: [a, b]`, Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				V Value `yaml:"v"`
			}
			err := yaml.Unmarshal([]byte(tt.input), &doc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc.V)
		})
	}
}

func TestValue_Property(t *testing.T) {
	data, err := json.Marshal(map[string]Value{
		"literal": Literal("vpc-123"),
		"export":  Export("core-vpc-id"),
		"ssm":     SSM("/core/listener"),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"literal": "vpc-123",
		"export": {"Fn::ImportValue": "core-vpc-id"},
		"ssm": "{{resolve:ssm:/core/listener}}"
	}`, string(data))
}

func TestValue_Int(t *testing.T) {
	n, err := LiteralInt(8080).Int()
	require.NoError(t, err)
	assert.Equal(t, 8080, n)

	_, err = Export("port").Int()
	assert.Error(t, err)
}

func TestValue_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(map[string]Value{"a": Export("x"), "b": Literal("y")})
	require.NoError(t, err)

	var back map[string]Value
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, Export("x"), back["a"])
	assert.Equal(t, Literal("y"), back["b"])
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "<unset>", Value{}.String())
	assert.Equal(t, "export x", Export("x").String())
	assert.Equal(t, "ssm /p", SSM("/p").String())
	assert.True(t, Value{}.IsZero())
}
