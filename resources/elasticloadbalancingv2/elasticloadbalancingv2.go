// Package elasticloadbalancingv2 contains CloudFormation property types
// for target groups, listener rules and listener certificates.
package elasticloadbalancingv2

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

// TargetGroup is AWS::ElasticLoadBalancingV2::TargetGroup.
type TargetGroup struct {
	Port                       int                  `json:"Port"`
	Protocol                   string               `json:"Protocol"`
	VpcId                      any                  `json:"VpcId"`
	TargetType                 string               `json:"TargetType,omitempty"`
	HealthCheckEnabled         bool                 `json:"HealthCheckEnabled"`
	HealthCheckIntervalSeconds int                  `json:"HealthCheckIntervalSeconds,omitempty"`
	HealthCheckPath            string               `json:"HealthCheckPath,omitempty"`
	HealthyThresholdCount      int                  `json:"HealthyThresholdCount,omitempty"`
	UnhealthyThresholdCount    int                  `json:"UnhealthyThresholdCount,omitempty"`
	Matcher                    *TargetGroup_Matcher `json:"Matcher,omitempty"`
	Tags                       []intrinsics.Tag     `json:"Tags,omitempty"`
}

// ResourceType returns "AWS::ElasticLoadBalancingV2::TargetGroup".
func (TargetGroup) ResourceType() string { return "AWS::ElasticLoadBalancingV2::TargetGroup" }

// TargetGroup_Matcher lists the HTTP codes counted as healthy.
type TargetGroup_Matcher struct {
	HttpCode string `json:"HttpCode"`
}

// ListenerRule is AWS::ElasticLoadBalancingV2::ListenerRule.
type ListenerRule struct {
	ListenerArn any                      `json:"ListenerArn"`
	Priority    int                      `json:"Priority"`
	Conditions  []ListenerRule_Condition `json:"Conditions"`
	Actions     []ListenerRule_Action    `json:"Actions"`
}

// ResourceType returns "AWS::ElasticLoadBalancingV2::ListenerRule".
func (ListenerRule) ResourceType() string { return "AWS::ElasticLoadBalancingV2::ListenerRule" }

// ListenerRule_Condition matches incoming requests.
type ListenerRule_Condition struct {
	Field            string                         `json:"Field"`
	HostHeaderConfig *ListenerRule_HostHeaderConfig `json:"HostHeaderConfig,omitempty"`
}

// ListenerRule_HostHeaderConfig holds the host names to match.
type ListenerRule_HostHeaderConfig struct {
	Values []string `json:"Values"`
}

// ListenerRule_Action is taken when all conditions match.
type ListenerRule_Action struct {
	Type           string `json:"Type"`
	TargetGroupArn any    `json:"TargetGroupArn,omitempty"`
}

// ListenerCertificate is AWS::ElasticLoadBalancingV2::ListenerCertificate.
// It adds certificates to a listener owned by another stack.
type ListenerCertificate struct {
	ListenerArn  any           `json:"ListenerArn"`
	Certificates []Certificate `json:"Certificates"`
}

// ResourceType returns "AWS::ElasticLoadBalancingV2::ListenerCertificate".
func (ListenerCertificate) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::ListenerCertificate"
}

// Certificate references an ACM certificate by ARN.
type Certificate struct {
	CertificateArn any `json:"CertificateArn"`
}
