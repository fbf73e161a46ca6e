// Package intrinsics provides the CloudFormation intrinsic functions used
// in composed resource properties.
//
// The core types are re-exported from cloudformation-schema-go:
//
//	Ref{LogicalName: "TargetGroup"} → {"Ref": "TargetGroup"}
//	Sub{String: "${AWS::StackName}-task"} → {"Fn::Sub": "${AWS::StackName}-task"}
//	ImportValue{ExportName: "core-vpc-id"} → {"Fn::ImportValue": "core-vpc-id"}
package intrinsics

import (
	"strings"

	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
	GetAtt = intrinsics.GetAtt

	// Sub represents a CloudFormation Fn::Sub intrinsic function.
	Sub = intrinsics.Sub

	// Join represents a CloudFormation Fn::Join intrinsic function.
	Join = intrinsics.Join

	// Select represents a CloudFormation Fn::Select intrinsic function.
	Select = intrinsics.Select

	// ImportValue represents a CloudFormation Fn::ImportValue intrinsic function.
	ImportValue = intrinsics.ImportValue

	// Tag represents a CloudFormation resource tag.
	Tag = intrinsics.Tag
)

// RefTo returns a Ref to the given logical ID.
func RefTo(logicalID string) Ref {
	return Ref{LogicalName: logicalID}
}

// SSMParameterArn returns the ARN of an SSM parameter in the stack's
// region and account. Paths are expected to start with "/".
//
//	SSMParameterArn("/blog/mysql/username")
//	→ {"Fn::Sub": "arn:${AWS::Partition}:ssm:${AWS::Region}:${AWS::AccountId}:parameter/blog/mysql/username"}
func SSMParameterArn(path string) Sub {
	return Sub{String: "arn:${AWS::Partition}:ssm:${AWS::Region}:${AWS::AccountId}:parameter/" + strings.TrimPrefix(path, "/")}
}

// ResolveSSM returns a dynamic reference that CloudFormation resolves to
// the current value of an SSM String parameter at deploy time.
func ResolveSSM(path string) string {
	return "{{resolve:ssm:" + path + "}}"
}
