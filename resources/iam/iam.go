// Package iam contains CloudFormation property types for IAM roles and
// inline policies.
package iam

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

// Role is AWS::IAM::Role.
type Role struct {
	AssumeRolePolicyDocument intrinsics.PolicyDocument `json:"AssumeRolePolicyDocument"`
	ManagedPolicyArns        []any                     `json:"ManagedPolicyArns,omitempty"`
	Policies                 []Role_Policy             `json:"Policies,omitempty"`
	Tags                     []intrinsics.Tag          `json:"Tags,omitempty"`
}

// ResourceType returns "AWS::IAM::Role".
func (Role) ResourceType() string { return "AWS::IAM::Role" }

// Role_Policy is an inline policy embedded in a Role.
type Role_Policy struct {
	PolicyName     string                    `json:"PolicyName"`
	PolicyDocument intrinsics.PolicyDocument `json:"PolicyDocument"`
}

// Policy is AWS::IAM::Policy, attached to roles after they exist.
type Policy struct {
	PolicyName     any                       `json:"PolicyName"`
	PolicyDocument intrinsics.PolicyDocument `json:"PolicyDocument"`
	Roles          []any                     `json:"Roles"`
}

// ResourceType returns "AWS::IAM::Policy".
func (Policy) ResourceType() string { return "AWS::IAM::Policy" }
