// Package config holds the deployment file model and the process
// settings read from the environment.
package config

import (
	"regexp"

	webstack "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/imports"
)

// MaxAzs is the number of /28 subnets a stack can take from its /24.
// Slots 0 and 1 are left unused.
const MaxAzs = 14

var appNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// StackConfig sizes and identifies one web stack.
type StackConfig struct {
	MaxAzs        int    `yaml:"maxAzs" json:"maxAzs"`
	AppID         int    `yaml:"appId" json:"appId"`
	Domain        string `yaml:"domain" json:"domain"`
	DNSRecord     string `yaml:"dnsRecord" json:"dnsRecord"`
	AppName       string `yaml:"appName" json:"appName"`
	InstanceCount int    `yaml:"instanceCount" json:"instanceCount"`
}

// Validate returns a ConfigurationError for the first invalid field.
func (c StackConfig) Validate() error {
	switch {
	case c.MaxAzs < 1 || c.MaxAzs > MaxAzs:
		return webstack.NewConfigurationError("maxAzs", "must be between 1 and %d, got %d", MaxAzs, c.MaxAzs)
	case c.AppID < 0 || c.AppID > 255:
		return webstack.NewConfigurationError("appId", "must be between 0 and 255, got %d", c.AppID)
	case c.Domain == "":
		return webstack.NewConfigurationError("domain", "is required")
	case c.DNSRecord == "":
		return webstack.NewConfigurationError("dnsRecord", "is required")
	case !appNamePattern.MatchString(c.AppName):
		return webstack.NewConfigurationError("appName", "%q must match %s", c.AppName, appNamePattern)
	case c.InstanceCount < 0:
		return webstack.NewConfigurationError("instanceCount", "must not be negative, got %d", c.InstanceCount)
	}
	return nil
}

// DNSName returns the stack's public host name.
func (c StackConfig) DNSName() string {
	return c.DNSRecord + "." + c.Domain
}

// Identity returns the values the import layer needs from the config.
func (c StackConfig) Identity() imports.Identity {
	return imports.Identity{AppName: c.AppName, DNSName: c.DNSName()}
}

// Stack is one entry of a deployment file.
type Stack struct {
	StackConfig `yaml:",inline"`
	imports.App `yaml:",inline"`
}
