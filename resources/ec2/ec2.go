// Package ec2 contains CloudFormation property types for the EC2
// networking resources a web stack owns.
package ec2

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

// Subnet is AWS::EC2::Subnet.
type Subnet struct {
	VpcId               any              `json:"VpcId"`
	AvailabilityZone    any              `json:"AvailabilityZone,omitempty"`
	CidrBlock           string           `json:"CidrBlock"`
	MapPublicIpOnLaunch bool             `json:"MapPublicIpOnLaunch,omitempty"`
	Tags                []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns "AWS::EC2::Subnet".
func (Subnet) ResourceType() string { return "AWS::EC2::Subnet" }

// RouteTable is AWS::EC2::RouteTable.
type RouteTable struct {
	VpcId any              `json:"VpcId"`
	Tags  []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns "AWS::EC2::RouteTable".
func (RouteTable) ResourceType() string { return "AWS::EC2::RouteTable" }

// SubnetRouteTableAssociation is AWS::EC2::SubnetRouteTableAssociation.
type SubnetRouteTableAssociation struct {
	RouteTableId any `json:"RouteTableId"`
	SubnetId     any `json:"SubnetId"`
}

// ResourceType returns "AWS::EC2::SubnetRouteTableAssociation".
func (SubnetRouteTableAssociation) ResourceType() string {
	return "AWS::EC2::SubnetRouteTableAssociation"
}

// Route is AWS::EC2::Route.
type Route struct {
	RouteTableId         any    `json:"RouteTableId"`
	DestinationCidrBlock string `json:"DestinationCidrBlock"`
	GatewayId            any    `json:"GatewayId,omitempty"`
}

// ResourceType returns "AWS::EC2::Route".
func (Route) ResourceType() string { return "AWS::EC2::Route" }

// SecurityGroup is AWS::EC2::SecurityGroup.
type SecurityGroup struct {
	GroupDescription     string                  `json:"GroupDescription"`
	VpcId                any                     `json:"VpcId"`
	SecurityGroupIngress []SecurityGroup_Ingress `json:"SecurityGroupIngress,omitempty"`
	Tags                 []intrinsics.Tag        `json:"Tags,omitempty"`
}

// ResourceType returns "AWS::EC2::SecurityGroup".
func (SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

// SecurityGroup_Ingress is an inline ingress rule of a SecurityGroup.
type SecurityGroup_Ingress struct {
	IpProtocol            string `json:"IpProtocol"`
	FromPort              int    `json:"FromPort"`
	ToPort                int    `json:"ToPort"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId,omitempty"`
	Description           string `json:"Description,omitempty"`
}

// SecurityGroupIngress is AWS::EC2::SecurityGroupIngress, a standalone
// rule added to a security group owned elsewhere.
type SecurityGroupIngress struct {
	GroupId               any    `json:"GroupId"`
	IpProtocol            string `json:"IpProtocol"`
	FromPort              int    `json:"FromPort"`
	ToPort                int    `json:"ToPort"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId"`
	Description           string `json:"Description,omitempty"`
}

// ResourceType returns "AWS::EC2::SecurityGroupIngress".
func (SecurityGroupIngress) ResourceType() string { return "AWS::EC2::SecurityGroupIngress" }
