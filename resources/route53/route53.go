// Package route53 contains the CloudFormation property type for DNS
// record sets.
package route53

// RecordSet is AWS::Route53::RecordSet.
type RecordSet struct {
	HostedZoneId    any    `json:"HostedZoneId"`
	Name            string `json:"Name"`
	Type            string `json:"Type"`
	TTL             string `json:"TTL,omitempty"`
	ResourceRecords []any  `json:"ResourceRecords,omitempty"`
}

// ResourceType returns "AWS::Route53::RecordSet".
func (RecordSet) ResourceType() string { return "AWS::Route53::RecordSet" }
