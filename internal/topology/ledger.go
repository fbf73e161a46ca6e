package topology

import (
	"fmt"
	"net"
	"strconv"

	webstack "github.com/lex00/wetwire-webstack-go"
)

// ReservedOwner is the owner recorded for claims made outside the
// deployment file.
const ReservedOwner = "reserved"

type cidrClaim struct {
	owner string
	block *net.IPNet
}

// Ledger records the address blocks, listener priorities and static host
// ports claimed by the stacks of one deployment. It is not safe for
// concurrent use.
type Ledger struct {
	vpcCidr    string
	cidrs      []cidrClaim
	priorities map[int]string
	hostPorts  map[int]string
}

// NewLedger returns an empty ledger for stacks carved from vpcCidr.
func NewLedger(vpcCidr string) *Ledger {
	return &Ledger{
		vpcCidr:    vpcCidr,
		priorities: map[int]string{},
		hostPorts:  map[int]string{},
	}
}

// Reserve records claims held by stacks outside the deployment.
func (l *Ledger) Reserve(cidrs []string, priorities []int) error {
	for _, c := range cidrs {
		_, block, err := net.ParseCIDR(c)
		if err != nil {
			return webstack.NewConfigurationError("reservedCidrs", "invalid CIDR %q", c)
		}
		if err := l.claimBlock(ReservedOwner, block); err != nil {
			return err
		}
	}
	for _, p := range priorities {
		if err := l.ClaimPriority(ReservedOwner, p); err != nil {
			return err
		}
	}
	return nil
}

// ClaimCIDR records block for owner. A block overlapping an existing
// claim is a TopologyCollision.
func (l *Ledger) ClaimCIDR(owner, block string) error {
	_, n, err := net.ParseCIDR(block)
	if err != nil {
		return webstack.NewConfigurationError("cidr", "invalid CIDR %q", block)
	}
	return l.claimBlock(owner, n)
}

func (l *Ledger) claimBlock(owner string, block *net.IPNet) error {
	for _, c := range l.cidrs {
		if Overlaps(c.block, block) {
			return &webstack.TopologyCollision{
				Kind:     "cidr",
				Value:    block.String(),
				Owner:    owner,
				Holder:   c.owner,
				Existing: c.block.String(),
			}
		}
	}
	l.cidrs = append(l.cidrs, cidrClaim{owner: owner, block: block})
	return nil
}

// ClaimPriority records a listener rule priority for owner.
func (l *Ledger) ClaimPriority(owner string, priority int) error {
	return claimNumber(l.priorities, "priority", owner, priority)
}

// ClaimHostPort records a static host port for owner. Stacks share the
// cluster's instances in bridge mode, so two stacks on one port cannot
// be placed together. Zero (a dynamic port) is never claimed.
func (l *Ledger) ClaimHostPort(owner string, port int) error {
	if port == 0 {
		return nil
	}
	return claimNumber(l.hostPorts, "hostPort", owner, port)
}

func claimNumber(claims map[int]string, kind, owner string, n int) error {
	if holder, ok := claims[n]; ok {
		return &webstack.TopologyCollision{
			Kind:   kind,
			Value:  strconv.Itoa(n),
			Owner:  owner,
			Holder: holder,
		}
	}
	claims[n] = owner
	return nil
}

// StackClaim is everything one stack takes from the shared topology.
type StackClaim struct {
	Owner    string
	AppID    int
	AZCount  int
	Priority int
	HostPort int
}

// Claim records every subnet block, the listener priority and the host
// port of one stack.
func (l *Ledger) Claim(c StackClaim) error {
	blocks, err := SubnetCIDRs(l.vpcCidr, c.AppID, c.AZCount)
	if err != nil {
		return fmt.Errorf("stack %s: %w", c.Owner, err)
	}
	for _, b := range blocks {
		if err := l.claimBlock(c.Owner, b); err != nil {
			return err
		}
	}
	if err := l.ClaimPriority(c.Owner, c.Priority); err != nil {
		return err
	}
	return l.ClaimHostPort(c.Owner, c.HostPort)
}
