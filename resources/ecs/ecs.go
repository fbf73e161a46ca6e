// Package ecs contains CloudFormation property types for ECS task
// definitions and services.
package ecs

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

// TaskDefinition is AWS::ECS::TaskDefinition.
type TaskDefinition struct {
	Family                  any                                  `json:"Family,omitempty"`
	NetworkMode             string                               `json:"NetworkMode,omitempty"`
	RequiresCompatibilities []string                             `json:"RequiresCompatibilities,omitempty"`
	TaskRoleArn             any                                  `json:"TaskRoleArn,omitempty"`
	ExecutionRoleArn        any                                  `json:"ExecutionRoleArn,omitempty"`
	ContainerDefinitions    []TaskDefinition_ContainerDefinition `json:"ContainerDefinitions"`
	Volumes                 []TaskDefinition_Volume              `json:"Volumes,omitempty"`
	Tags                    []intrinsics.Tag                     `json:"Tags,omitempty"`
}

// ResourceType returns "AWS::ECS::TaskDefinition".
func (TaskDefinition) ResourceType() string { return "AWS::ECS::TaskDefinition" }

// TaskDefinition_ContainerDefinition describes one container of a task.
type TaskDefinition_ContainerDefinition struct {
	Name              string                           `json:"Name"`
	Image             any                              `json:"Image"`
	Essential         bool                             `json:"Essential"`
	MemoryReservation int                              `json:"MemoryReservation,omitempty"`
	PortMappings      []TaskDefinition_PortMapping     `json:"PortMappings,omitempty"`
	Environment       []TaskDefinition_KeyValuePair    `json:"Environment,omitempty"`
	Secrets           []TaskDefinition_Secret          `json:"Secrets,omitempty"`
	MountPoints       []TaskDefinition_MountPoint      `json:"MountPoints,omitempty"`
	LogConfiguration  *TaskDefinition_LogConfiguration `json:"LogConfiguration,omitempty"`
}

// TaskDefinition_PortMapping maps a container port to a host port.
type TaskDefinition_PortMapping struct {
	ContainerPort int    `json:"ContainerPort"`
	HostPort      int    `json:"HostPort,omitempty"`
	Protocol      string `json:"Protocol,omitempty"`
}

// TaskDefinition_KeyValuePair is a plain environment variable.
type TaskDefinition_KeyValuePair struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

// TaskDefinition_Secret injects a value from SSM or Secrets Manager at
// task launch. ValueFrom is the parameter ARN, never the value.
type TaskDefinition_Secret struct {
	Name      string `json:"Name"`
	ValueFrom any    `json:"ValueFrom"`
}

// TaskDefinition_MountPoint mounts a task volume into the container.
type TaskDefinition_MountPoint struct {
	SourceVolume  string `json:"SourceVolume"`
	ContainerPath string `json:"ContainerPath"`
	ReadOnly      bool   `json:"ReadOnly"`
}

// TaskDefinition_LogConfiguration configures the container log driver.
type TaskDefinition_LogConfiguration struct {
	LogDriver string         `json:"LogDriver"`
	Options   map[string]any `json:"Options,omitempty"`
}

// TaskDefinition_Volume is a named task volume.
type TaskDefinition_Volume struct {
	Name                   string                                 `json:"Name"`
	EFSVolumeConfiguration *TaskDefinition_EFSVolumeConfiguration `json:"EFSVolumeConfiguration,omitempty"`
}

// TaskDefinition_EFSVolumeConfiguration binds a volume to an EFS file system.
type TaskDefinition_EFSVolumeConfiguration struct {
	FilesystemId        any                                 `json:"FilesystemId"`
	TransitEncryption   string                              `json:"TransitEncryption,omitempty"`
	AuthorizationConfig *TaskDefinition_AuthorizationConfig `json:"AuthorizationConfig,omitempty"`
}

// TaskDefinition_AuthorizationConfig selects the access point and IAM mode.
type TaskDefinition_AuthorizationConfig struct {
	AccessPointId any    `json:"AccessPointId,omitempty"`
	IAM           string `json:"IAM,omitempty"`
}

// Service is AWS::ECS::Service.
type Service struct {
	Cluster        any                    `json:"Cluster"`
	TaskDefinition any                    `json:"TaskDefinition"`
	LaunchType     string                 `json:"LaunchType,omitempty"`
	DesiredCount   int                    `json:"DesiredCount"`
	LoadBalancers  []Service_LoadBalancer `json:"LoadBalancers,omitempty"`
	Tags           []intrinsics.Tag       `json:"Tags,omitempty"`
}

// ResourceType returns "AWS::ECS::Service".
func (Service) ResourceType() string { return "AWS::ECS::Service" }

// Service_LoadBalancer registers the service's container with a target group.
type Service_LoadBalancer struct {
	ContainerName  string `json:"ContainerName"`
	ContainerPort  int    `json:"ContainerPort"`
	TargetGroupArn any    `json:"TargetGroupArn"`
}
