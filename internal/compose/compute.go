package compose

import (
	webstack "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/intrinsics"
	"github.com/lex00/wetwire-webstack-go/resources/ecs"
	"github.com/lex00/wetwire-webstack-go/resources/iam"
	"github.com/lex00/wetwire-webstack-go/resources/logs"
)

const (
	// ContainerPort is the port the web container listens on.
	ContainerPort     = 80
	memoryReservation = 100
	logRetentionDays  = 30

	tasksPrincipal        = "ecs-tasks.amazonaws.com"
	executionPolicyArn    = "arn:${AWS::Partition}:iam::aws:policy/service-role/AmazonECSTaskExecutionRolePolicy"
	ssmParameterValueType = "AWS::SSM::Parameter::Value<String>"
)

// secret maps a container secret to the parameter under the secrets
// prefix holding it.
type secret struct {
	env  string
	name string
}

var secrets = []secret{
	{env: "WORDPRESS_DB_USER", name: "username"},
	{env: "WORDPRESS_DB_PASSWORD", name: "password"},
	{env: "WORDPRESS_DB_NAME", name: "database"},
}

// ContainerName returns the name of the stack's web container.
func ContainerName(appName string) string {
	return appName + "-container"
}

// compute builds the task definition, its roles and log group.
func (b *builder) compute() {
	b.add(LogGroup, RoleLogGroup, logs.LogGroup{
		RetentionInDays: logRetentionDays,
		Tags:            b.tags(),
	})

	b.add(TaskRole, RoleTaskRole, iam.Role{
		AssumeRolePolicyDocument: intrinsics.AssumeRoleBy(tasksPrincipal),
		Tags:                     b.tags(),
	})
	b.add(TaskRolePolicy, RoleTaskRolePolicy, iam.Policy{
		PolicyName: b.cfg.AppName + "-efs-client",
		PolicyDocument: intrinsics.NewPolicyDocument(intrinsics.Allow(
			[]string{"elasticfilesystem:ClientMount", "elasticfilesystem:ClientWrite"},
			b.refs.FileSystemArn.Property(),
		)),
		Roles: []any{ref(TaskRole)},
	})
	b.dependOn(TaskRolePolicy, TaskRole, "attached to task role")

	secretArns := make([]any, 0, len(secrets))
	for _, s := range secrets {
		secretArns = append(secretArns, intrinsics.SSMParameterArn(b.refs.ParameterPath(s.name)))
	}
	b.add(ExecutionRole, RoleExecutionRole, iam.Role{
		AssumeRolePolicyDocument: intrinsics.AssumeRoleBy(tasksPrincipal),
		ManagedPolicyArns:        []any{intrinsics.Sub{String: executionPolicyArn}},
		Policies: []iam.Role_Policy{{
			PolicyName:     "read-secrets",
			PolicyDocument: intrinsics.NewPolicyDocument(intrinsics.Allow([]string{"ssm:GetParameters"}, secretArns...)),
		}},
		Tags: b.tags(),
	})

	if b.err == nil {
		b.err = b.graph.AddParameter(DbHostParameter, webstack.Parameter{
			Type:        ssmParameterValueType,
			Description: "SSM parameter holding the database host",
			Default:     b.refs.DatabaseEndpointParameter,
		})
	}

	container := ecs.TaskDefinition_ContainerDefinition{
		Name:              ContainerName(b.cfg.AppName),
		Image:             b.refs.Image.Property(),
		Essential:         true,
		MemoryReservation: memoryReservation,
		PortMappings: []ecs.TaskDefinition_PortMapping{{
			ContainerPort: ContainerPort,
			HostPort:      b.refs.HostPort,
			Protocol:      "tcp",
		}},
		Environment: []ecs.TaskDefinition_KeyValuePair{
			{Name: "WORDPRESS_DB_HOST", Value: ref(DbHostParameter)},
		},
		LogConfiguration: &ecs.TaskDefinition_LogConfiguration{
			LogDriver: "awslogs",
			Options: map[string]any{
				"awslogs-group":         ref(LogGroup),
				"awslogs-region":        intrinsics.AWS_REGION,
				"awslogs-stream-prefix": b.cfg.AppName,
			},
		},
	}
	for i, s := range secrets {
		container.Secrets = append(container.Secrets, ecs.TaskDefinition_Secret{
			Name:      s.env,
			ValueFrom: secretArns[i],
		})
	}

	volumes := make([]ecs.TaskDefinition_Volume, 0, len(Mounts))
	for _, m := range Mounts {
		volumes = append(volumes, ecs.TaskDefinition_Volume{
			Name: m.Name,
			EFSVolumeConfiguration: &ecs.TaskDefinition_EFSVolumeConfiguration{
				FilesystemId:      b.refs.FileSystemID.Property(),
				TransitEncryption: "ENABLED",
				AuthorizationConfig: &ecs.TaskDefinition_AuthorizationConfig{
					AccessPointId: ref(m.AccessPointID()),
					IAM:           "ENABLED",
				},
			},
		})
		container.MountPoints = append(container.MountPoints, ecs.TaskDefinition_MountPoint{
			SourceVolume:  m.Name,
			ContainerPath: m.ContainerPath,
			ReadOnly:      false,
		})
	}

	b.add(TaskDefinition, RoleTaskDefinition, ecs.TaskDefinition{
		Family:                  b.cfg.AppName,
		NetworkMode:             "bridge",
		RequiresCompatibilities: []string{"EC2"},
		TaskRoleArn:             getAtt(TaskRole, "Arn"),
		ExecutionRoleArn:        getAtt(ExecutionRole, "Arn"),
		ContainerDefinitions:    []ecs.TaskDefinition_ContainerDefinition{container},
		Volumes:                 volumes,
		Tags:                    b.tags(),
	})
	b.dependOn(TaskDefinition, TaskRole, "task role")
	b.dependOn(TaskDefinition, ExecutionRole, "execution role")
	b.dependOn(TaskDefinition, LogGroup, "container logs")
	for _, m := range Mounts {
		b.dependOn(TaskDefinition, m.AccessPointID(), "volume "+m.Name)
	}
}
