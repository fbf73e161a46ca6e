// Package topology derives the per-AZ address space of a stack and
// detects collisions between co-deployed stacks before anything is
// applied.
package topology

import (
	"fmt"
	"net"

	"github.com/apparentlymart/go-cidr/cidr"

	webstack "github.com/lex00/wetwire-webstack-go"
)

const (
	// SubnetBits is the number of bits added to the /16 to reach a /28.
	SubnetBits = 12
	// SlotsPerApp is the number of /28 blocks in one app's /24.
	SlotsPerApp = 16
	// FirstSlot is the first /28 of an app's /24 used for subnets.
	FirstSlot = 2
)

// SubnetCIDR returns the CIDR block of the subnet for the given app and
// AZ index. With the default 10.0.0.0/16 this is
// 10.0.<appID>.<(azIndex+2)*16>/28.
func SubnetCIDR(vpcCidr string, appID, azIndex int) (*net.IPNet, error) {
	_, vpc, err := net.ParseCIDR(vpcCidr)
	if err != nil {
		return nil, webstack.NewConfigurationError("vpcCidr", "invalid CIDR %q", vpcCidr)
	}
	if ones, _ := vpc.Mask.Size(); ones != 16 {
		return nil, webstack.NewConfigurationError("vpcCidr", "must be a /16, got /%d", ones)
	}
	if azIndex < 0 || azIndex+FirstSlot >= SlotsPerApp {
		return nil, webstack.NewConfigurationError("maxAzs", "AZ index %d does not fit in the app's /24", azIndex)
	}
	if appID < 0 || appID > 255 {
		return nil, webstack.NewConfigurationError("appId", "must be between 0 and 255, got %d", appID)
	}

	subnet, err := cidr.Subnet(vpc, SubnetBits, appID*SlotsPerApp+azIndex+FirstSlot)
	if err != nil {
		return nil, fmt.Errorf("deriving subnet %d for app %d: %w", azIndex, appID, err)
	}
	return subnet, nil
}

// SubnetCIDRs returns the subnet blocks for azCount zones.
func SubnetCIDRs(vpcCidr string, appID, azCount int) ([]*net.IPNet, error) {
	out := make([]*net.IPNet, 0, azCount)
	for i := 0; i < azCount; i++ {
		n, err := SubnetCIDR(vpcCidr, appID, i)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if len(out) > 0 {
		_, vpc, _ := net.ParseCIDR(vpcCidr)
		if err := cidr.VerifyNoOverlap(out, vpc); err != nil {
			return nil, fmt.Errorf("app %d subnets: %w", appID, err)
		}
	}
	return out, nil
}

// Overlaps reports whether two networks share any address.
func Overlaps(a, b *net.IPNet) bool {
	return a.Contains(b.IP) || b.Contains(a.IP)
}
