// Package certificatemanager contains the CloudFormation property type
// for DNS-validated ACM certificates.
package certificatemanager

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

// Certificate is AWS::CertificateManager::Certificate.
type Certificate struct {
	DomainName              string                               `json:"DomainName"`
	ValidationMethod        string                               `json:"ValidationMethod,omitempty"`
	DomainValidationOptions []Certificate_DomainValidationOption `json:"DomainValidationOptions,omitempty"`
	Tags                    []intrinsics.Tag                     `json:"Tags,omitempty"`
}

// ResourceType returns "AWS::CertificateManager::Certificate".
func (Certificate) ResourceType() string { return "AWS::CertificateManager::Certificate" }

// Certificate_DomainValidationOption names the hosted zone in which
// CloudFormation creates the validation record.
type Certificate_DomainValidationOption struct {
	DomainName   string `json:"DomainName"`
	HostedZoneId any    `json:"HostedZoneId"`
}
