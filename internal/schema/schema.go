// Package schema provides offline CloudFormation schema validation for
// the resource types a web stack emits.
//
// It catches a missing required property or a value outside an enum
// before a template reaches cfn-lint or CloudFormation.
package schema

import (
	"fmt"
	"sort"
	"strings"

	webstack "github.com/lex00/wetwire-webstack-go"
)

// Options configures schema validation.
type Options struct {
	// Strict reports properties missing from the schema as warnings.
	Strict bool
}

// Issue is a schema violation on one resource property.
type Issue struct {
	Resource string `json:"resource"`
	Property string `json:"property"`
	Message  string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s.%s: %s", i.Resource, i.Property, i.Message)
}

// Result contains schema validation results.
type Result struct {
	Valid    bool
	Errors   []Issue
	Warnings []Issue
}

// ValidateTemplate validates every resource of t against the known
// schemas. Resources are visited in logical ID order.
func ValidateTemplate(t *webstack.Template, opts Options) *Result {
	result := &Result{Valid: true}

	names := make([]string, 0, len(t.Resources))
	for name := range t.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		errors, warnings := validateResource(name, t.Resources[name], opts)
		result.Errors = append(result.Errors, errors...)
		result.Warnings = append(result.Warnings, warnings...)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func validateResource(name string, resource webstack.ResourceDef, opts Options) ([]Issue, []Issue) {
	var errors, warnings []Issue

	if !isValidResourceType(resource.Type) {
		errors = append(errors, Issue{
			Resource: name,
			Property: "Type",
			Message:  fmt.Sprintf("invalid resource type format: %s", resource.Type),
		})
	}

	schema, ok := resourceSchemas[resource.Type]
	if !ok {
		warnings = append(warnings, Issue{
			Resource: name,
			Property: "Type",
			Message:  fmt.Sprintf("unknown resource type: %s (schema not available for validation)", resource.Type),
		})
		return errors, warnings
	}

	for _, required := range schema.Required {
		if _, exists := resource.Properties[required]; !exists {
			errors = append(errors, Issue{
				Resource: name,
				Property: required,
				Message:  fmt.Sprintf("missing required property: %s", required),
			})
		}
	}

	props := make([]string, 0, len(resource.Properties))
	for propName := range resource.Properties {
		props = append(props, propName)
	}
	sort.Strings(props)

	for _, propName := range props {
		propSchema, ok := schema.Properties[propName]
		if !ok {
			if opts.Strict {
				warnings = append(warnings, Issue{
					Resource: name,
					Property: propName,
					Message:  fmt.Sprintf("unknown property: %s", propName),
				})
			}
			continue
		}
		errors = append(errors, validateProperty(name, propName, resource.Properties[propName], propSchema)...)
	}

	return errors, warnings
}

// isValidResourceType checks for the AWS::Service::Resource or Custom::* form.
func isValidResourceType(resourceType string) bool {
	if strings.HasPrefix(resourceType, "Custom::") {
		return true
	}
	parts := strings.Split(resourceType, "::")
	if len(parts) != 3 {
		return false
	}
	return parts[0] == "AWS"
}

func validateProperty(resource, property string, value any, schema PropertySchema) []Issue {
	var errors []Issue

	if !isValidType(value, schema.Type) {
		errors = append(errors, Issue{
			Resource: resource,
			Property: property,
			Message:  fmt.Sprintf("expected type %s", schema.Type),
		})
	}

	if len(schema.AllowedValues) > 0 {
		if strVal, ok := value.(string); ok && !contains(schema.AllowedValues, strVal) {
			errors = append(errors, Issue{
				Resource: resource,
				Property: property,
				Message:  fmt.Sprintf("value %q not in allowed values: %v", strVal, schema.AllowedValues),
			})
		}
	}

	return errors
}

func contains(values []string, v string) bool {
	for _, allowed := range values {
		if v == allowed {
			return true
		}
	}
	return false
}

// isValidType checks if a value matches the expected type. Intrinsic
// functions match any type.
func isValidType(value any, expectedType string) bool {
	if m, ok := value.(map[string]any); ok {
		for key := range m {
			if strings.HasPrefix(key, "Fn::") || key == "Ref" {
				return true
			}
		}
	}

	switch expectedType {
	case "String":
		_, ok := value.(string)
		return ok
	case "Integer":
		switch value.(type) {
		case int, int32, int64, float64:
			return true
		}
		return false
	case "Boolean":
		_, ok := value.(bool)
		return ok
	case "List":
		_, ok := value.([]any)
		return ok
	case "Map":
		_, ok := value.(map[string]any)
		return ok
	default:
		return true
	}
}

// ResourceSchema defines the schema for a resource type.
type ResourceSchema struct {
	Required   []string
	Properties map[string]PropertySchema
}

// PropertySchema defines the schema for a property.
type PropertySchema struct {
	Type          string
	AllowedValues []string
}

var (
	str  = PropertySchema{Type: "String"}
	num  = PropertySchema{Type: "Integer"}
	flag = PropertySchema{Type: "Boolean"}
	list = PropertySchema{Type: "List"}
	obj  = PropertySchema{Type: "Map"}
	doc  = PropertySchema{Type: "Json"}
)

func oneOf(values ...string) PropertySchema {
	return PropertySchema{Type: "String", AllowedValues: values}
}

var resourceSchemas = map[string]ResourceSchema{
	"AWS::EC2::Subnet": {
		Required: []string{"VpcId"},
		Properties: map[string]PropertySchema{
			"VpcId": str, "AvailabilityZone": str, "CidrBlock": str,
			"MapPublicIpOnLaunch": flag, "Tags": list,
		},
	},
	"AWS::EC2::RouteTable": {
		Required:   []string{"VpcId"},
		Properties: map[string]PropertySchema{"VpcId": str, "Tags": list},
	},
	"AWS::EC2::SubnetRouteTableAssociation": {
		Required:   []string{"RouteTableId", "SubnetId"},
		Properties: map[string]PropertySchema{"RouteTableId": str, "SubnetId": str},
	},
	"AWS::EC2::Route": {
		Required: []string{"RouteTableId"},
		Properties: map[string]PropertySchema{
			"RouteTableId": str, "DestinationCidrBlock": str, "GatewayId": str,
		},
	},
	"AWS::EC2::SecurityGroup": {
		Required: []string{"GroupDescription"},
		Properties: map[string]PropertySchema{
			"GroupDescription": str, "VpcId": str, "SecurityGroupIngress": list, "Tags": list,
		},
	},
	"AWS::EC2::SecurityGroupIngress": {
		Required: []string{"IpProtocol"},
		Properties: map[string]PropertySchema{
			"GroupId": str, "IpProtocol": str, "FromPort": num, "ToPort": num,
			"SourceSecurityGroupId": str, "Description": str,
		},
	},
	"AWS::EFS::MountTarget": {
		Required: []string{"FileSystemId", "SecurityGroups", "SubnetId"},
		Properties: map[string]PropertySchema{
			"FileSystemId": str, "SecurityGroups": list, "SubnetId": str,
		},
	},
	"AWS::EFS::AccessPoint": {
		Required: []string{"FileSystemId"},
		Properties: map[string]PropertySchema{
			"FileSystemId": str, "PosixUser": obj, "RootDirectory": obj, "AccessPointTags": list,
		},
	},
	"AWS::IAM::Role": {
		Required: []string{"AssumeRolePolicyDocument"},
		Properties: map[string]PropertySchema{
			"AssumeRolePolicyDocument": doc, "ManagedPolicyArns": list, "Policies": list, "Tags": list,
		},
	},
	"AWS::IAM::Policy": {
		Required: []string{"PolicyDocument", "PolicyName"},
		Properties: map[string]PropertySchema{
			"PolicyDocument": doc, "PolicyName": str, "Roles": list,
		},
	},
	"AWS::Logs::LogGroup": {
		Properties: map[string]PropertySchema{"LogGroupName": str, "RetentionInDays": num, "Tags": list},
	},
	"AWS::ECS::TaskDefinition": {
		Properties: map[string]PropertySchema{
			"Family":                  str,
			"NetworkMode":             oneOf("bridge", "host", "awsvpc", "none"),
			"RequiresCompatibilities": list,
			"TaskRoleArn":             str,
			"ExecutionRoleArn":        str,
			"ContainerDefinitions":    list,
			"Volumes":                 list,
			"Tags":                    list,
		},
	},
	"AWS::ECS::Service": {
		Properties: map[string]PropertySchema{
			"Cluster":        str,
			"TaskDefinition": str,
			"LaunchType":     oneOf("EC2", "FARGATE", "EXTERNAL"),
			"DesiredCount":   num,
			"LoadBalancers":  list,
			"Tags":           list,
		},
	},
	"AWS::ElasticLoadBalancingV2::TargetGroup": {
		Properties: map[string]PropertySchema{
			"Port":                       num,
			"Protocol":                   oneOf("HTTP", "HTTPS", "TCP", "TLS", "UDP", "TCP_UDP", "GENEVE"),
			"VpcId":                      str,
			"TargetType":                 oneOf("instance", "ip", "lambda", "alb"),
			"HealthCheckEnabled":         flag,
			"HealthCheckIntervalSeconds": num,
			"HealthCheckPath":            str,
			"HealthyThresholdCount":      num,
			"UnhealthyThresholdCount":    num,
			"Matcher":                    obj,
			"Tags":                       list,
		},
	},
	"AWS::ElasticLoadBalancingV2::ListenerRule": {
		Required: []string{"Actions", "Conditions", "Priority"},
		Properties: map[string]PropertySchema{
			"ListenerArn": str, "Priority": num, "Actions": list, "Conditions": list,
		},
	},
	"AWS::ElasticLoadBalancingV2::ListenerCertificate": {
		Required:   []string{"Certificates", "ListenerArn"},
		Properties: map[string]PropertySchema{"Certificates": list, "ListenerArn": str},
	},
	"AWS::CertificateManager::Certificate": {
		Required: []string{"DomainName"},
		Properties: map[string]PropertySchema{
			"DomainName":              str,
			"ValidationMethod":        oneOf("DNS", "EMAIL"),
			"DomainValidationOptions": list,
			"Tags":                    list,
		},
	},
	"AWS::Route53::RecordSet": {
		Required: []string{"Name", "Type"},
		Properties: map[string]PropertySchema{
			"HostedZoneId":    str,
			"Name":            str,
			"Type":            oneOf("A", "AAAA", "CAA", "CNAME", "DS", "MX", "NAPTR", "NS", "PTR", "SOA", "SPF", "SRV", "TXT"),
			"TTL":             str,
			"ResourceRecords": list,
		},
	},
}
