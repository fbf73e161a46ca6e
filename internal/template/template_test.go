package template

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	webstack "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/compose"
	"github.com/lex00/wetwire-webstack-go/internal/compose/composetest"
	"github.com/lex00/wetwire-webstack-go/internal/config"
)

func TestBuild_Blog(t *testing.T) {
	tmpl, err := Build(composetest.Stack(t))
	require.NoError(t, err)

	assert.Equal(t, "2010-09-09", tmpl.AWSTemplateFormatVersion)
	assert.Equal(t, "webstack blog (blog.example.com)", tmpl.Description)
	// 4 per AZ, 5 access points, 13 singletons.
	assert.Len(t, tmpl.Resources, 2*4+2+5+13)

	subnet := tmpl.Resources["Subnet1"]
	assert.Equal(t, "AWS::EC2::Subnet", subnet.Type)
	assert.Equal(t, "10.0.7.48/28", subnet.Properties["CidrBlock"])
	assert.Equal(t, map[string]any{"Fn::ImportValue": "core-vpc-id"}, subnet.Properties["VpcId"])
	assert.Empty(t, subnet.DependsOn)

	param, ok := tmpl.Parameters["DbHostParameter"]
	require.True(t, ok)
	assert.Equal(t, "AWS::SSM::Parameter::Value<String>", param.Type)
}

func TestBuild_DependsOn(t *testing.T) {
	tmpl, err := Build(composetest.Stack(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Certificate", "ListenerRule"}, tmpl.Resources["ListenerCertificate"].DependsOn)
	assert.Subset(t, tmpl.Resources["Service"].DependsOn,
		[]string{"ExecutionRole", "LbIngress", "ListenerRule", "TaskDefinition", "TaskRolePolicy"})
	assert.Subset(t, tmpl.Resources["TaskDefinition"].DependsOn,
		[]string{"AccessPointPlugins", "AccessPointRun", "AccessPointThemes", "AccessPointTmp", "AccessPointUploads"})
}

func TestBuild_Outputs(t *testing.T) {
	tmpl, err := Build(composetest.Stack(t))
	require.NoError(t, err)

	out, ok := tmpl.Outputs["DnsName"]
	require.True(t, ok)
	assert.Equal(t, map[string]any{"Ref": "AliasRecord"}, out.Value)
	require.NotNil(t, out.Export)
	assert.Equal(t, "blog-DnsName", out.Export.Name)
}

func TestBuild_ZeroInstances(t *testing.T) {
	stack := composetest.Stack(t, func(c *config.StackConfig) { c.InstanceCount = 0 })
	tmpl, err := Build(stack)
	require.NoError(t, err)
	assert.Equal(t, float64(0), tmpl.Resources[compose.Service].Properties["DesiredCount"])
}

func TestBuilder_WithDescription(t *testing.T) {
	tmpl, err := NewBuilder(composetest.Stack(t)).WithDescription("custom").Build()
	require.NoError(t, err)
	assert.Equal(t, "custom", tmpl.Description)
}

func TestToJSON(t *testing.T) {
	tmpl, err := Build(composetest.Stack(t))
	require.NoError(t, err)

	data, err := ToJSON(tmpl)
	require.NoError(t, err)

	var back webstack.Template
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Len(t, back.Resources, len(tmpl.Resources))
	assert.Contains(t, string(data), `"AWSTemplateFormatVersion": "2010-09-09"`)
}

func TestToYAML(t *testing.T) {
	tmpl, err := Build(composetest.Stack(t))
	require.NoError(t, err)

	data, err := ToYAML(tmpl)
	require.NoError(t, err)
	assert.Contains(t, string(data), "AWSTemplateFormatVersion:")

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	resources := doc["Resources"].(map[string]any)
	cert := resources["ListenerCertificate"].(map[string]any)
	assert.Equal(t, []any{"Certificate", "ListenerRule"}, cert["DependsOn"])
}

func TestRender(t *testing.T) {
	tmpl, err := Build(composetest.Stack(t))
	require.NoError(t, err)

	for _, format := range []string{"", "json", "yaml"} {
		data, err := Render(tmpl, format)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
	_, err = Render(tmpl, "xml")
	assert.Error(t, err)
}
