package compose

import (
	"fmt"

	"github.com/lex00/wetwire-webstack-go/resources/ec2"
	"github.com/lex00/wetwire-webstack-go/resources/efs"
)

const (
	nfsPort     = 2049
	posixID     = "0"
	permissions = "755"
)

// storage attaches the shared file system to every subnet and creates
// one access point per mount.
func (b *builder) storage() {
	b.add(FsSecurityGroup, RoleFsSecurityGroup, ec2.SecurityGroup{
		GroupDescription: fmt.Sprintf("%s file system mount targets", b.cfg.AppName),
		VpcId:            b.refs.VpcID.Property(),
		SecurityGroupIngress: []ec2.SecurityGroup_Ingress{{
			IpProtocol:            "tcp",
			FromPort:              nfsPort,
			ToPort:                nfsPort,
			SourceSecurityGroupId: b.refs.ClusterSecurityGroupID.Property(),
			Description:           fmt.Sprintf("Allow traffic from %s to the File System", b.cfg.AppName),
		}},
		Tags: b.tags(),
	})

	for i, subnet := range b.subnets {
		id := fmt.Sprintf("MountTarget%d", i)
		b.add(id, RoleMountTarget, efs.MountTarget{
			FileSystemId:   b.refs.FileSystemID.Property(),
			SubnetId:       ref(subnet),
			SecurityGroups: []any{getAtt(FsSecurityGroup, "GroupId")},
		})
		b.dependOn(id, subnet, "mounts into subnet")
		b.dependOn(id, FsSecurityGroup, "secured by")
	}

	for _, m := range Mounts {
		b.add(m.AccessPointID(), RoleAccessPoint, efs.AccessPoint{
			FileSystemId: b.refs.FileSystemID.Property(),
			PosixUser:    &efs.AccessPoint_PosixUser{Uid: posixID, Gid: posixID},
			RootDirectory: &efs.AccessPoint_RootDirectory{
				Path: m.RemotePath,
				CreationInfo: &efs.AccessPoint_CreationInfo{
					OwnerUid:    posixID,
					OwnerGid:    posixID,
					Permissions: permissions,
				},
			},
			AccessPointTags: b.tags(),
		})
	}
}
