package compose

// Mount maps a logical volume to a file system path and the container
// path it is mounted at.
type Mount struct {
	Name          string
	RemotePath    string
	ContainerPath string
}

// Mounts is the fixed set of shared volumes every stack mounts.
var Mounts = []Mount{
	{Name: "tmp", RemotePath: "/tmp", ContainerPath: "/tmp"},
	{Name: "run", RemotePath: "/run", ContainerPath: "/run"},
	{Name: "uploads", RemotePath: "/uploads", ContainerPath: "/usr/src/wordpress/wp-content/uploads"},
	{Name: "themes", RemotePath: "/themes", ContainerPath: "/usr/src/wordpress/wp-content/themes"},
	{Name: "plugins", RemotePath: "/plugins", ContainerPath: "/usr/src/wordpress/wp-content/plugins"},
}

// AccessPointID returns the logical ID of the access point for m.
func (m Mount) AccessPointID() string {
	return "AccessPoint" + exportedName(m.Name)
}

func exportedName(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
