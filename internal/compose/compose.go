// Package compose builds the resource graph of one web stack.
//
// Compose is a pure function of a StackConfig and the resolved import
// References: it performs no I/O and every ordering constraint between
// the resources it creates is declared as an explicit edge.
package compose

import (
	"fmt"

	webstack "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/config"
	"github.com/lex00/wetwire-webstack-go/internal/imports"
	"github.com/lex00/wetwire-webstack-go/internal/resource"
	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

// TagKey is applied to every taggable resource a stack creates.
const TagKey = "webstack:app"

// Node roles.
const (
	RoleSubnet              resource.Role = "subnet"
	RoleRouteTable          resource.Role = "route-table"
	RoleRouteAssociation    resource.Role = "route-table-association"
	RoleRoute               resource.Role = "route"
	RoleFsSecurityGroup     resource.Role = "fs-security-group"
	RoleMountTarget         resource.Role = "mount-target"
	RoleAccessPoint         resource.Role = "access-point"
	RoleLogGroup            resource.Role = "log-group"
	RoleTaskRole            resource.Role = "task-role"
	RoleTaskRolePolicy      resource.Role = "task-role-policy"
	RoleExecutionRole       resource.Role = "execution-role"
	RoleTaskDefinition      resource.Role = "task-definition"
	RoleLbIngress           resource.Role = "lb-ingress"
	RoleService             resource.Role = "service"
	RoleTargetGroup         resource.Role = "target-group"
	RoleListenerRule        resource.Role = "listener-rule"
	RoleCertificate         resource.Role = "certificate"
	RoleListenerCertificate resource.Role = "listener-certificate"
	RoleDNSRecord           resource.Role = "dns-record"
)

// Singleton logical IDs.
const (
	FsSecurityGroup     = "FsSecurityGroup"
	LogGroup            = "LogGroup"
	TaskRole            = "TaskRole"
	TaskRolePolicy      = "TaskRolePolicy"
	ExecutionRole       = "ExecutionRole"
	TaskDefinition      = "TaskDefinition"
	LbIngress           = "LbIngress"
	Service             = "Service"
	TargetGroup         = "TargetGroup"
	ListenerRule        = "ListenerRule"
	Certificate         = "Certificate"
	ListenerCertificate = "ListenerCertificate"
	AliasRecord         = "AliasRecord"
	DbHostParameter     = "DbHostParameter"
	DNSNameOutput       = "DnsName"
)

// Stack is the composed resource graph of one web stack.
type Stack struct {
	Name    string
	DNSName string
	Graph   *resource.Graph
}

// Compose validates its inputs and builds the stack's resource graph.
func Compose(cfg config.StackConfig, refs *imports.References) (*Stack, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if refs == nil {
		return nil, webstack.NewConfigurationError("imports", "references are required")
	}
	if err := refs.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxAzs > len(refs.AvailabilityZones) {
		return nil, webstack.NewConfigurationError("maxAzs",
			"%d exceeds the %d availability zones available", cfg.MaxAzs, len(refs.AvailabilityZones))
	}

	b := &builder{
		cfg:   cfg,
		refs:  refs,
		graph: resource.NewGraph(),
	}
	b.network()
	b.storage()
	b.compute()
	b.service()
	b.routing()
	if b.err != nil {
		return nil, b.err
	}

	if err := b.graph.Verify(); err != nil {
		return nil, fmt.Errorf("composing %s: %w", cfg.AppName, err)
	}
	return &Stack{Name: cfg.AppName, DNSName: refs.DNSName, Graph: b.graph}, nil
}

// builder accumulates nodes and edges. After the first error every
// further call is a no-op.
type builder struct {
	cfg   config.StackConfig
	refs  *imports.References
	graph *resource.Graph
	err   error

	subnets []string
}

func (b *builder) add(id string, role resource.Role, props webstack.Resource) {
	if b.err != nil {
		return
	}
	_, b.err = b.graph.Add(id, role, props)
}

func (b *builder) dependOn(from, to, reason string) {
	if b.err != nil {
		return
	}
	b.err = b.graph.DependOn(from, to, reason)
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *builder) tags() []intrinsics.Tag {
	return []intrinsics.Tag{{Key: TagKey, Value: b.cfg.AppName}}
}

func ref(id string) intrinsics.Ref {
	return intrinsics.RefTo(id)
}

func getAtt(id, attr string) webstack.AttrRef {
	return webstack.AttrRef{Resource: id, Attribute: attr}
}
