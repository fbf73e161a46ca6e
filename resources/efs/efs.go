// Package efs contains CloudFormation property types for EFS mount
// targets and access points.
package efs

import (
	"github.com/lex00/wetwire-webstack-go/intrinsics"
)

// MountTarget is AWS::EFS::MountTarget.
type MountTarget struct {
	FileSystemId   any   `json:"FileSystemId"`
	SubnetId       any   `json:"SubnetId"`
	SecurityGroups []any `json:"SecurityGroups"`
}

// ResourceType returns "AWS::EFS::MountTarget".
func (MountTarget) ResourceType() string { return "AWS::EFS::MountTarget" }

// AccessPoint is AWS::EFS::AccessPoint.
type AccessPoint struct {
	FileSystemId    any                        `json:"FileSystemId"`
	PosixUser       *AccessPoint_PosixUser     `json:"PosixUser,omitempty"`
	RootDirectory   *AccessPoint_RootDirectory `json:"RootDirectory,omitempty"`
	AccessPointTags []intrinsics.Tag           `json:"AccessPointTags,omitempty"`
}

// ResourceType returns "AWS::EFS::AccessPoint".
func (AccessPoint) ResourceType() string { return "AWS::EFS::AccessPoint" }

// AccessPoint_PosixUser is the POSIX identity applied to all requests
// made through the access point.
type AccessPoint_PosixUser struct {
	Uid string `json:"Uid"`
	Gid string `json:"Gid"`
}

// AccessPoint_RootDirectory scopes the access point to a path.
type AccessPoint_RootDirectory struct {
	Path         string                    `json:"Path"`
	CreationInfo *AccessPoint_CreationInfo `json:"CreationInfo,omitempty"`
}

// AccessPoint_CreationInfo is applied when the root directory does not exist yet.
type AccessPoint_CreationInfo struct {
	OwnerUid    string `json:"OwnerUid"`
	OwnerGid    string `json:"OwnerGid"`
	Permissions string `json:"Permissions"`
}
