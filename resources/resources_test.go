package resources_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	webstack "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/resources/certificatemanager"
	"github.com/lex00/wetwire-webstack-go/resources/ec2"
	"github.com/lex00/wetwire-webstack-go/resources/ecs"
	"github.com/lex00/wetwire-webstack-go/resources/efs"
	"github.com/lex00/wetwire-webstack-go/resources/elasticloadbalancingv2"
	"github.com/lex00/wetwire-webstack-go/resources/iam"
	"github.com/lex00/wetwire-webstack-go/resources/logs"
	"github.com/lex00/wetwire-webstack-go/resources/route53"
)

// TestResourceTypes verifies every property type reports its CloudFormation type.
func TestResourceTypes(t *testing.T) {
	tests := []struct {
		name     string
		resource webstack.Resource
		expected string
	}{
		{"Subnet", ec2.Subnet{}, "AWS::EC2::Subnet"},
		{"RouteTable", ec2.RouteTable{}, "AWS::EC2::RouteTable"},
		{"SubnetRouteTableAssociation", ec2.SubnetRouteTableAssociation{}, "AWS::EC2::SubnetRouteTableAssociation"},
		{"Route", ec2.Route{}, "AWS::EC2::Route"},
		{"SecurityGroup", ec2.SecurityGroup{}, "AWS::EC2::SecurityGroup"},
		{"SecurityGroupIngress", ec2.SecurityGroupIngress{}, "AWS::EC2::SecurityGroupIngress"},
		{"MountTarget", efs.MountTarget{}, "AWS::EFS::MountTarget"},
		{"AccessPoint", efs.AccessPoint{}, "AWS::EFS::AccessPoint"},
		{"Role", iam.Role{}, "AWS::IAM::Role"},
		{"Policy", iam.Policy{}, "AWS::IAM::Policy"},
		{"LogGroup", logs.LogGroup{}, "AWS::Logs::LogGroup"},
		{"TaskDefinition", ecs.TaskDefinition{}, "AWS::ECS::TaskDefinition"},
		{"Service", ecs.Service{}, "AWS::ECS::Service"},
		{"TargetGroup", elasticloadbalancingv2.TargetGroup{}, "AWS::ElasticLoadBalancingV2::TargetGroup"},
		{"ListenerRule", elasticloadbalancingv2.ListenerRule{}, "AWS::ElasticLoadBalancingV2::ListenerRule"},
		{"ListenerCertificate", elasticloadbalancingv2.ListenerCertificate{}, "AWS::ElasticLoadBalancingV2::ListenerCertificate"},
		{"Certificate", certificatemanager.Certificate{}, "AWS::CertificateManager::Certificate"},
		{"RecordSet", route53.RecordSet{}, "AWS::Route53::RecordSet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resource.ResourceType())
		})
	}
}

func TestServiceSerialization_ZeroDesiredCount(t *testing.T) {
	svc := ecs.Service{
		Cluster:        "webstack-cluster",
		TaskDefinition: intrinsics.RefTo("TaskDefinition"),
		DesiredCount:   0,
	}

	data, err := json.Marshal(svc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"DesiredCount":0`)
}

func TestAccessPointSerialization(t *testing.T) {
	ap := efs.AccessPoint{
		FileSystemId: "fs-123",
		PosixUser:    &efs.AccessPoint_PosixUser{Uid: "0", Gid: "0"},
		RootDirectory: &efs.AccessPoint_RootDirectory{
			Path:         "/uploads",
			CreationInfo: &efs.AccessPoint_CreationInfo{OwnerUid: "0", OwnerGid: "0", Permissions: "755"},
		},
	}

	data, err := json.Marshal(ap)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"FileSystemId": "fs-123",
		"PosixUser": {"Uid": "0", "Gid": "0"},
		"RootDirectory": {
			"Path": "/uploads",
			"CreationInfo": {"OwnerUid": "0", "OwnerGid": "0", "Permissions": "755"}
		}
	}`, string(data))
}

func TestMountPointSerialization_Writable(t *testing.T) {
	mp := ecs.TaskDefinition_MountPoint{SourceVolume: "tmp", ContainerPath: "/tmp"}
	data, err := json.Marshal(mp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"SourceVolume": "tmp", "ContainerPath": "/tmp", "ReadOnly": false}`, string(data))
}
