package compose

import (
	"fmt"

	"github.com/lex00/wetwire-webstack-go/internal/topology"
	"github.com/lex00/wetwire-webstack-go/resources/ec2"
)

// network creates one public subnet per AZ with its own route table and
// a default route to the shared internet gateway.
func (b *builder) network() {
	for i := 0; i < b.cfg.MaxAzs; i++ {
		block, err := topology.SubnetCIDR(b.refs.VpcCidr, b.cfg.AppID, i)
		if err != nil {
			b.fail(err)
			return
		}

		subnet := fmt.Sprintf("Subnet%d", i)
		table := fmt.Sprintf("RouteTable%d", i)
		assoc := fmt.Sprintf("RouteTableAssociation%d", i)
		route := fmt.Sprintf("PublicRoute%d", i)

		b.add(subnet, RoleSubnet, ec2.Subnet{
			VpcId:               b.refs.VpcID.Property(),
			AvailabilityZone:    b.refs.AvailabilityZones[i],
			CidrBlock:           block.String(),
			MapPublicIpOnLaunch: true,
			Tags:                b.tags(),
		})
		b.add(table, RoleRouteTable, ec2.RouteTable{
			VpcId: b.refs.VpcID.Property(),
			Tags:  b.tags(),
		})
		b.add(assoc, RoleRouteAssociation, ec2.SubnetRouteTableAssociation{
			RouteTableId: ref(table),
			SubnetId:     ref(subnet),
		})
		b.dependOn(assoc, table, "associates route table")
		b.dependOn(assoc, subnet, "associates subnet")

		b.add(route, RoleRoute, ec2.Route{
			RouteTableId:         ref(table),
			DestinationCidrBlock: "0.0.0.0/0",
			GatewayId:            b.refs.InternetGatewayID.Property(),
		})
		b.dependOn(route, table, "default route")

		b.subnets = append(b.subnets, subnet)
	}
}
