// Package composetest provides fixtures for tests that need a composed
// stack.
package composetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-webstack-go/internal/compose"
	"github.com/lex00/wetwire-webstack-go/internal/config"
	"github.com/lex00/wetwire-webstack-go/internal/imports"
)

// Config returns the configuration of a two-AZ stack named blog.
func Config() config.StackConfig {
	return config.StackConfig{
		MaxAzs:        2,
		AppID:         7,
		Domain:        "example.com",
		DNSRecord:     "blog",
		AppName:       "blog",
		InstanceCount: 1,
	}
}

// Shared returns shared imports referencing core-* exports.
func Shared() imports.Shared {
	return imports.Shared{
		VpcID:                       imports.Export("core-vpc-id"),
		AvailabilityZones:           []string{"eu-west-1a", "eu-west-1b", "eu-west-1c"},
		ClusterName:                 imports.Export("core-cluster-name"),
		ClusterSecurityGroupID:      imports.Export("core-cluster-sg"),
		LoadBalancerSecurityGroupID: imports.Export("core-lb-sg"),
		ListenerArn:                 imports.Export("core-https-listener"),
		LoadBalancerDNSName:         imports.Export("core-lb-dns"),
		HostedZoneID:                imports.Literal("Z0123456789"),
		InternetGatewayID:           imports.Export("core-igw"),
		FileSystemID:                imports.Export("core-efs-id"),
		FileSystemArn:               imports.Export("core-efs-arn"),
	}
}

// App returns per-app imports with literal port and priority.
func App() imports.App {
	return imports.App{
		Image:    imports.Literal("wordpress:6"),
		HostPort: imports.LiteralInt(8080),
		Priority: imports.LiteralInt(10),
	}
}

// Deployment returns a deployment holding the blog stack.
func Deployment() *config.Deployment {
	return &config.Deployment{
		Region:  "eu-west-1",
		Imports: Shared(),
		Stacks:  []config.Stack{{StackConfig: Config(), App: App()}},
	}
}

// DeploymentYAML is Deployment in file form.
const DeploymentYAML = `region: eu-west-1
imports:
  vpcId: {export: core-vpc-id}
  availabilityZones: [eu-west-1a, eu-west-1b, eu-west-1c]
  clusterName: {export: core-cluster-name}
  clusterSecurityGroupId: {export: core-cluster-sg}
  loadBalancerSecurityGroupId: {export: core-lb-sg}
  listenerArn: {export: core-https-listener}
  loadBalancerDnsName: {export: core-lb-dns}
  hostedZoneId: Z0123456789
  internetGatewayId: {export: core-igw}
  fileSystemId: {export: core-efs-id}
  fileSystemArn: {export: core-efs-arn}
stacks:
  - appName: blog
    appId: 7
    maxAzs: 2
    domain: example.com
    dnsRecord: blog
    instanceCount: 1
    image: wordpress:6
    hostPort: 8080
    priority: 10
`

// Stack composes the blog stack, applying mutate to its config first.
func Stack(tb testing.TB, mutate ...func(*config.StackConfig)) *compose.Stack {
	tb.Helper()
	cfg := Config()
	for _, m := range mutate {
		m(&cfg)
	}
	refs, err := (&imports.Resolver{}).Resolve(context.Background(), Shared(), App(), cfg.Identity())
	require.NoError(tb, err)

	stack, err := compose.Compose(cfg, refs)
	require.NoError(tb, err)
	return stack
}
