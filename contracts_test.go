package webstack

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrRef_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		ref      AttrRef
		expected string
	}{
		{
			name:     "role arn",
			ref:      AttrRef{Resource: "TaskRole", Attribute: "Arn"},
			expected: `{"Fn::GetAtt":["TaskRole","Arn"]}`,
		},
		{
			name:     "security group id",
			ref:      AttrRef{Resource: "FsSecurityGroup", Attribute: "GroupId"},
			expected: `{"Fn::GetAtt":["FsSecurityGroup","GroupId"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ref)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestAttrRef_IsZero(t *testing.T) {
	assert.True(t, AttrRef{}.IsZero())
	assert.False(t, AttrRef{Resource: "TaskRole"}.IsZero())
	assert.False(t, AttrRef{Attribute: "Arn"}.IsZero())
}

func TestTemplate_JSON(t *testing.T) {
	tmpl := Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]ResourceDef{
			"Subnet0": {
				Type:       "AWS::EC2::Subnet",
				Properties: map[string]any{"CidrBlock": "10.0.7.32/28"},
			},
			"MountTarget0": {
				Type:      "AWS::EFS::MountTarget",
				DependsOn: []string{"Subnet0"},
			},
		},
		Outputs: map[string]Output{
			"DnsName": {Value: "blog.example.com", Export: &Export{Name: "blog-DnsName"}},
		},
	}

	data, err := json.Marshal(tmpl)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	resources := parsed["Resources"].(map[string]any)
	mt := resources["MountTarget0"].(map[string]any)
	assert.Equal(t, []any{"Subnet0"}, mt["DependsOn"])
	assert.NotContains(t, mt, "Properties")
	assert.NotContains(t, parsed, "Parameters")

	outputs := parsed["Outputs"].(map[string]any)
	assert.Equal(t, "blog-DnsName", outputs["DnsName"].(map[string]any)["Export"].(map[string]any)["Name"])
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		msg   string
	}{
		{
			name:  "configuration",
			err:   NewConfigurationError("maxAzs", "must be at least 1, got %d", 0),
			check: IsConfiguration,
			msg:   "configuration: maxAzs: must be at least 1, got 0",
		},
		{
			name:  "missing values",
			err:   MissingValuesError([]string{"hostedZoneId", "vpcId"}),
			check: IsConfiguration,
			msg:   "configuration: hostedZoneId, vpcId: required value is missing",
		},
		{
			name:  "collision",
			err:   &TopologyCollision{Kind: "cidr", Value: "10.0.7.32/28", Owner: "shop", Holder: "blog"},
			check: IsCollision,
			msg:   "topology collision: cidr 10.0.7.32/28 claimed by shop is already held by blog",
		},
		{
			name:  "dependency",
			err:   &DependencyUnavailable{Reference: "export core-vpc-id"},
			check: IsDependencyUnavailable,
			msg:   "dependency unavailable: export core-vpc-id",
		},
		{
			name:  "convergence",
			err:   &ConvergenceFailure{Stack: "blog", LogicalID: "Service", Type: "AWS::ECS::Service", Status: "CREATE_FAILED", Reason: "unhealthy"},
			check: IsConvergence,
			msg:   "convergence failed for stack blog: resource Service (AWS::ECS::Service) CREATE_FAILED: unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestErrorTaxonomy_Distinct(t *testing.T) {
	err := NewConfigurationError("appName", "must not be empty")
	assert.False(t, IsCollision(err))
	assert.False(t, IsDependencyUnavailable(err))
	assert.False(t, IsConvergence(err))
	assert.False(t, IsConfiguration(errors.New("plain")))
}

func TestTopologyCollision_Existing(t *testing.T) {
	err := &TopologyCollision{Kind: "cidr", Value: "10.0.7.32/28", Owner: "blog", Holder: "reserved", Existing: "10.0.7.0/24"}
	assert.Contains(t, err.Error(), "(10.0.7.0/24)")
}

func TestDependencyUnavailable_Unwrap(t *testing.T) {
	cause := errors.New("not found")
	err := &DependencyUnavailable{Reference: "ssm /blog/hostPort", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "dependency unavailable: ssm /blog/hostPort: not found", err.Error())
}
