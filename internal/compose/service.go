package compose

import (
	"fmt"

	"github.com/lex00/wetwire-webstack-go/resources/ec2"
	"github.com/lex00/wetwire-webstack-go/resources/ecs"
)

// service creates the load balancer ingress rule on the cluster and the
// ECS service. The service is only created once everything its tasks
// need to pass health checks exists.
func (b *builder) service() {
	b.add(LbIngress, RoleLbIngress, ec2.SecurityGroupIngress{
		GroupId:               b.refs.ClusterSecurityGroupID.Property(),
		IpProtocol:            "tcp",
		FromPort:              b.refs.HostPort,
		ToPort:                b.refs.HostPort,
		SourceSecurityGroupId: b.refs.LoadBalancerSecurityGroupID.Property(),
		Description:           fmt.Sprintf("Allow traffic from ELB for %s", b.cfg.AppName),
	})

	b.add(Service, RoleService, ecs.Service{
		Cluster:        b.refs.ClusterName.Property(),
		TaskDefinition: ref(TaskDefinition),
		LaunchType:     "EC2",
		DesiredCount:   b.cfg.InstanceCount,
		LoadBalancers: []ecs.Service_LoadBalancer{{
			ContainerName:  ContainerName(b.cfg.AppName),
			ContainerPort:  ContainerPort,
			TargetGroupArn: ref(TargetGroup),
		}},
		Tags: b.tags(),
	})
	b.dependOn(Service, LbIngress, "load balancer traffic allowed on host port")
	b.dependOn(Service, TaskDefinition, "runs task definition")
	b.dependOn(Service, TaskRolePolicy, "file system access granted")
	b.dependOn(Service, ExecutionRole, "secrets readable")
	for i := range b.subnets {
		b.dependOn(Service, fmt.Sprintf("MountTarget%d", i), "volumes mountable")
	}
}
