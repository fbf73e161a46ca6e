// Package logs contains the CloudFormation property type for log groups.
package logs

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

// LogGroup is AWS::Logs::LogGroup.
type LogGroup struct {
	LogGroupName    any              `json:"LogGroupName,omitempty"`
	RetentionInDays int              `json:"RetentionInDays,omitempty"`
	Tags            []intrinsics.Tag `json:"Tags,omitempty"`
}

// ResourceType returns "AWS::Logs::LogGroup".
func (LogGroup) ResourceType() string { return "AWS::Logs::LogGroup" }
