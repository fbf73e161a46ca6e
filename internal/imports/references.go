package imports

import (
	"net"
	"strings"

	webstack "github.com/lex00/wetwire-webstack-go"
)

const (
	// DefaultVpcCidr is the address space stack subnets are carved from.
	DefaultVpcCidr = "10.0.0.0/16"
	// DefaultDatabaseEndpointParameter holds the shared database host.
	DefaultDatabaseEndpointParameter = "/core/mysql/endpoint"
)

// Shared holds the references to infrastructure shared by every stack
// in a deployment. None of it is created or mutated by a stack.
type Shared struct {
	VpcID                       Value    `yaml:"vpcId"`
	VpcCidr                     string   `yaml:"vpcCidr"`
	AvailabilityZones           []string `yaml:"availabilityZones"`
	ClusterName                 Value    `yaml:"clusterName"`
	ClusterSecurityGroupID      Value    `yaml:"clusterSecurityGroupId"`
	LoadBalancerSecurityGroupID Value    `yaml:"loadBalancerSecurityGroupId"`
	ListenerArn                 Value    `yaml:"listenerArn"`
	LoadBalancerDNSName         Value    `yaml:"loadBalancerDnsName"`
	HostedZoneID                Value    `yaml:"hostedZoneId"`
	InternetGatewayID           Value    `yaml:"internetGatewayId"`
	FileSystemID                Value    `yaml:"fileSystemId"`
	FileSystemArn               Value    `yaml:"fileSystemArn"`

	// DatabaseEndpointParameter is the SSM path of the database host,
	// injected into the container as a plain environment value.
	DatabaseEndpointParameter string `yaml:"databaseEndpointParameter"`
	// SecretsPrefix is the SSM path under which the database
	// credentials live. Defaults to /<appName>/mysql.
	SecretsPrefix string `yaml:"secretsPrefix"`

	// ReservedCidrs and ReservedPriorities are held by stacks deployed
	// outside this deployment file.
	ReservedCidrs      []string `yaml:"reservedCidrs"`
	ReservedPriorities []int    `yaml:"reservedPriorities"`
}

// App holds the per-application imported values.
type App struct {
	Image    Value `yaml:"image"`
	HostPort Value `yaml:"hostPort"`
	Priority Value `yaml:"priority"`
}

// References is the validated view of the import layer a single stack
// is composed against.
type References struct {
	Shared

	Image Value
	// HostPort and Priority are resolved to numbers because collisions
	// and security rules are checked against them before apply.
	HostPort int
	Priority int
	// DNSName is the stack's public host name.
	DNSName string
}

type namedValue struct {
	key   string
	value Value
}

func (s Shared) values() []namedValue {
	return []namedValue{
		{"vpcId", s.VpcID},
		{"clusterName", s.ClusterName},
		{"clusterSecurityGroupId", s.ClusterSecurityGroupID},
		{"loadBalancerSecurityGroupId", s.LoadBalancerSecurityGroupID},
		{"listenerArn", s.ListenerArn},
		{"loadBalancerDnsName", s.LoadBalancerDNSName},
		{"hostedZoneId", s.HostedZoneID},
		{"internetGatewayId", s.InternetGatewayID},
		{"fileSystemId", s.FileSystemID},
		{"fileSystemArn", s.FileSystemArn},
	}
}

func (a App) values() []namedValue {
	return []namedValue{
		{"image", a.Image},
		{"hostPort", a.HostPort},
		{"priority", a.Priority},
	}
}

// WithDefaults fills optional shared settings.
func (s Shared) WithDefaults() Shared {
	if s.VpcCidr == "" {
		s.VpcCidr = DefaultVpcCidr
	}
	if s.DatabaseEndpointParameter == "" {
		s.DatabaseEndpointParameter = DefaultDatabaseEndpointParameter
	}
	return s
}

// Validate checks that every required value is present. All missing
// keys are reported together as one ConfigurationError.
func (r *References) Validate() error {
	var missing []string
	for _, nv := range r.Shared.values() {
		if nv.value.IsZero() {
			missing = append(missing, nv.key)
		}
	}
	if len(r.AvailabilityZones) == 0 {
		missing = append(missing, "availabilityZones")
	}
	if r.Image.IsZero() {
		missing = append(missing, "image")
	}
	if r.HostPort == 0 {
		missing = append(missing, "hostPort")
	}
	if r.Priority == 0 {
		missing = append(missing, "priority")
	}
	if r.DNSName == "" {
		missing = append(missing, "dnsName")
	}
	if len(missing) > 0 {
		return webstack.MissingValuesError(missing)
	}

	if _, _, err := net.ParseCIDR(r.VpcCidr); err != nil {
		return webstack.NewConfigurationError("vpcCidr", "invalid CIDR %q", r.VpcCidr)
	}
	if r.HostPort < 1 || r.HostPort > 65535 {
		return webstack.NewConfigurationError("hostPort", "must be between 1 and 65535, got %d", r.HostPort)
	}
	if r.Priority < 1 || r.Priority > 50000 {
		return webstack.NewConfigurationError("priority", "must be between 1 and 50000, got %d", r.Priority)
	}
	for _, c := range r.ReservedCidrs {
		if _, _, err := net.ParseCIDR(c); err != nil {
			return webstack.NewConfigurationError("reservedCidrs", "invalid CIDR %q", c)
		}
	}
	return nil
}

// ParameterPath joins a name onto the secrets prefix.
func (r *References) ParameterPath(name string) string {
	return strings.TrimSuffix(r.SecretsPrefix, "/") + "/" + name
}
