package intrinsics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefTo_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(RefTo("TargetGroup"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ref": "TargetGroup"}`, string(data))
}

func TestImportValue_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(ImportValue{ExportName: "core-vpc-id"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::ImportValue": "core-vpc-id"}`, string(data))
}

func TestSSMParameterArn(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/blog/mysql/username", "arn:${AWS::Partition}:ssm:${AWS::Region}:${AWS::AccountId}:parameter/blog/mysql/username"},
		{"core/mysql/endpoint", "arn:${AWS::Partition}:ssm:${AWS::Region}:${AWS::AccountId}:parameter/core/mysql/endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			data, err := json.Marshal(SSMParameterArn(tt.path))
			require.NoError(t, err)
			assert.JSONEq(t, `{"Fn::Sub": "`+tt.want+`"}`, string(data))
		})
	}
}

func TestResolveSSM(t *testing.T) {
	assert.Equal(t, "{{resolve:ssm:/blog/image}}", ResolveSSM("/blog/image"))
}

func TestPseudoParameters(t *testing.T) {
	tests := []struct {
		name     string
		param    Ref
		expected string
	}{
		{"AWS_REGION", AWS_REGION, `{"Ref": "AWS::Region"}`},
		{"AWS_ACCOUNT_ID", AWS_ACCOUNT_ID, `{"Ref": "AWS::AccountId"}`},
		{"AWS_STACK_NAME", AWS_STACK_NAME, `{"Ref": "AWS::StackName"}`},
		{"AWS_PARTITION", AWS_PARTITION, `{"Ref": "AWS::Partition"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.param)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestAllow(t *testing.T) {
	stmt := Allow([]string{"elasticfilesystem:ClientMount", "elasticfilesystem:ClientWrite"}, "arn:aws:elasticfilesystem:us-east-1:123:file-system/fs-1")
	data, err := json.Marshal(stmt)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Effect": "Allow",
		"Action": ["elasticfilesystem:ClientMount", "elasticfilesystem:ClientWrite"],
		"Resource": ["arn:aws:elasticfilesystem:us-east-1:123:file-system/fs-1"]
	}`, string(data))
}

func TestAssumeRoleBy(t *testing.T) {
	data, err := json.Marshal(AssumeRoleBy("ecs-tasks.amazonaws.com"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"Service": "ecs-tasks.amazonaws.com"},
			"Action": "sts:AssumeRole"
		}]
	}`, string(data))
}

func TestServicePrincipal_Multiple(t *testing.T) {
	data, err := json.Marshal(ServicePrincipal{"ecs-tasks.amazonaws.com", "ec2.amazonaws.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Service": ["ecs-tasks.amazonaws.com", "ec2.amazonaws.com"]}`, string(data))
}
