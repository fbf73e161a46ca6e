package compose

import (
	"fmt"

	"github.com/lex00/wetwire-webstack-go/internal/resource"
	"github.com/lex00/wetwire-webstack-go/resources/certificatemanager"
	"github.com/lex00/wetwire-webstack-go/resources/elasticloadbalancingv2"
	"github.com/lex00/wetwire-webstack-go/resources/route53"
)

const (
	healthCheckInterval = 60
	healthyCodes        = "200,301"
	healthyThreshold    = 2
	unhealthyThreshold  = 5
	recordTTL           = "3600"
)

// routing wires the stack into the shared load balancer and DNS.
//
//	TargetGroup <- ListenerRule <- ListenerCertificate -> Certificate
//	AliasRecord
//
// The DnsName output waits for both the certificate attachment and the
// alias record.
func (b *builder) routing() {
	dnsName := b.refs.DNSName

	b.add(TargetGroup, RoleTargetGroup, elasticloadbalancingv2.TargetGroup{
		Port:                       ContainerPort,
		Protocol:                   "HTTP",
		VpcId:                      b.refs.VpcID.Property(),
		TargetType:                 "instance",
		HealthCheckEnabled:         true,
		HealthCheckIntervalSeconds: healthCheckInterval,
		HealthCheckPath:            "/",
		HealthyThresholdCount:      healthyThreshold,
		UnhealthyThresholdCount:    unhealthyThreshold,
		Matcher:                    &elasticloadbalancingv2.TargetGroup_Matcher{HttpCode: healthyCodes},
		Tags:                       b.tags(),
	})
	b.dependOn(Service, TargetGroup, "registers targets")

	b.add(ListenerRule, RoleListenerRule, elasticloadbalancingv2.ListenerRule{
		ListenerArn: b.refs.ListenerArn.Property(),
		Priority:    b.refs.Priority,
		Conditions: []elasticloadbalancingv2.ListenerRule_Condition{{
			Field:            "host-header",
			HostHeaderConfig: &elasticloadbalancingv2.ListenerRule_HostHeaderConfig{Values: []string{dnsName}},
		}},
		Actions: []elasticloadbalancingv2.ListenerRule_Action{{
			Type:           "forward",
			TargetGroupArn: ref(TargetGroup),
		}},
	})
	b.dependOn(ListenerRule, TargetGroup, "forwards to target group")
	b.dependOn(Service, ListenerRule, "target group attached to listener")

	b.add(Certificate, RoleCertificate, certificatemanager.Certificate{
		DomainName:       dnsName,
		ValidationMethod: "DNS",
		DomainValidationOptions: []certificatemanager.Certificate_DomainValidationOption{{
			DomainName:   dnsName,
			HostedZoneId: b.refs.HostedZoneID.Property(),
		}},
		Tags: b.tags(),
	})

	b.add(ListenerCertificate, RoleListenerCertificate, elasticloadbalancingv2.ListenerCertificate{
		ListenerArn:  b.refs.ListenerArn.Property(),
		Certificates: []elasticloadbalancingv2.Certificate{{CertificateArn: ref(Certificate)}},
	})
	b.dependOn(ListenerCertificate, ListenerRule, "attached after routing rule")
	b.dependOn(ListenerCertificate, Certificate, "certificate validated")

	b.add(AliasRecord, RoleDNSRecord, route53.RecordSet{
		HostedZoneId:    b.refs.HostedZoneID.Property(),
		Name:            dnsName,
		Type:            "CNAME",
		TTL:             recordTTL,
		ResourceRecords: []any{b.refs.LoadBalancerDNSName.Property()},
	})

	if b.err == nil {
		b.err = b.graph.AddOutput(resource.Output{
			Name:        DNSNameOutput,
			Description: fmt.Sprintf("Public DNS name of %s", b.cfg.AppName),
			Value:       ref(AliasRecord),
			ExportName:  b.cfg.AppName + "-" + DNSNameOutput,
			DependsOn:   []string{ListenerCertificate, AliasRecord},
		})
	}
}
