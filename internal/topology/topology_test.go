package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	webstack "github.com/lex00/wetwire-webstack-go"
)

func TestSubnetCIDR(t *testing.T) {
	tests := []struct {
		appID    int
		azIndex  int
		expected string
	}{
		{7, 0, "10.0.7.32/28"},
		{7, 1, "10.0.7.48/28"},
		{0, 0, "10.0.0.32/28"},
		{255, 13, "10.0.255.240/28"},
		{12, 2, "10.0.12.64/28"},
	}

	for _, tt := range tests {
		got, err := SubnetCIDR("10.0.0.0/16", tt.appID, tt.azIndex)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got.String())
	}
}

func TestSubnetCIDR_OtherVpc(t *testing.T) {
	got, err := SubnetCIDR("172.31.0.0/16", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, "172.31.3.32/28", got.String())
}

func TestSubnetCIDR_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		vpc     string
		appID   int
		azIndex int
	}{
		{"bad cidr", "10.0.0.0", 1, 0},
		{"not a /16", "10.0.0.0/20", 1, 0},
		{"az overflow", "10.0.0.0/16", 1, 14},
		{"negative az", "10.0.0.0/16", 1, -1},
		{"app overflow", "10.0.0.0/16", 256, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SubnetCIDR(tt.vpc, tt.appID, tt.azIndex)
			require.Error(t, err)
			assert.True(t, webstack.IsConfiguration(err))
		})
	}
}

func TestSubnetCIDRs_DisjointAndDeterministic(t *testing.T) {
	for n := 1; n <= 14; n++ {
		first, err := SubnetCIDRs("10.0.0.0/16", 42, n)
		require.NoError(t, err)
		require.Len(t, first, n)

		second, err := SubnetCIDRs("10.0.0.0/16", 42, n)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		for i := range first {
			for j := i + 1; j < len(first); j++ {
				assert.False(t, Overlaps(first[i], first[j]), "%s overlaps %s", first[i], first[j])
			}
		}
	}
}

func stackClaim(owner string, appID, azCount, priority int) StackClaim {
	return StackClaim{Owner: owner, AppID: appID, AZCount: azCount, Priority: priority, HostPort: 8000 + appID}
}

func TestLedger_AppIDCollision(t *testing.T) {
	l := NewLedger("10.0.0.0/16")
	require.NoError(t, l.Claim(stackClaim("blog", 7, 2, 10)))

	err := l.Claim(stackClaim("shop", 7, 1, 11))
	require.Error(t, err)
	assert.True(t, webstack.IsCollision(err))

	var coll *webstack.TopologyCollision
	require.ErrorAs(t, err, &coll)
	assert.Equal(t, "cidr", coll.Kind)
	assert.Equal(t, "10.0.7.32/28", coll.Value)
	assert.Equal(t, "shop", coll.Owner)
	assert.Equal(t, "blog", coll.Holder)
}

func TestLedger_PriorityCollision(t *testing.T) {
	l := NewLedger("10.0.0.0/16")
	require.NoError(t, l.Claim(stackClaim("blog", 7, 2, 10)))

	err := l.Claim(stackClaim("shop", 8, 2, 10))
	require.Error(t, err)
	assert.EqualError(t, err, "topology collision: priority 10 claimed by shop is already held by blog")
}

func TestLedger_HostPortCollision(t *testing.T) {
	l := NewLedger("10.0.0.0/16")
	require.NoError(t, l.Claim(StackClaim{Owner: "blog", AppID: 7, AZCount: 2, Priority: 10, HostPort: 8080}))

	err := l.Claim(StackClaim{Owner: "shop", AppID: 8, AZCount: 2, Priority: 11, HostPort: 8080})
	require.Error(t, err)

	var coll *webstack.TopologyCollision
	require.ErrorAs(t, err, &coll)
	assert.Equal(t, "hostPort", coll.Kind)
	assert.Equal(t, "8080", coll.Value)
	assert.Equal(t, "blog", coll.Holder)
}

func TestLedger_DynamicHostPortsNeverCollide(t *testing.T) {
	l := NewLedger("10.0.0.0/16")
	require.NoError(t, l.ClaimHostPort("blog", 0))
	require.NoError(t, l.ClaimHostPort("shop", 0))
	require.NoError(t, l.ClaimHostPort("blog", 8080))
	assert.True(t, webstack.IsCollision(l.ClaimHostPort("shop", 8080)))
}

func TestLedger_Reserved(t *testing.T) {
	l := NewLedger("10.0.0.0/16")
	require.NoError(t, l.Reserve([]string{"10.0.9.0/24"}, []int{1}))

	err := l.Claim(stackClaim("blog", 9, 1, 5))
	var coll *webstack.TopologyCollision
	require.ErrorAs(t, err, &coll)
	assert.Equal(t, ReservedOwner, coll.Holder)
	assert.Equal(t, "10.0.9.0/24", coll.Existing)
	assert.Contains(t, err.Error(), "(10.0.9.0/24)")

	err = l.Claim(stackClaim("shop", 10, 1, 1))
	assert.True(t, webstack.IsCollision(err))

	assert.True(t, webstack.IsConfiguration(l.Reserve([]string{"bogus"}, nil)))
}

func TestLedger_DistinctStacks(t *testing.T) {
	l := NewLedger("10.0.0.0/16")
	require.NoError(t, l.Claim(stackClaim("blog", 7, 3, 10)))
	require.NoError(t, l.Claim(stackClaim("shop", 8, 3, 11)))
	require.NoError(t, l.ClaimCIDR("bastion", "10.0.200.0/24"))

	err := l.ClaimCIDR("vpn", "10.0.200.16/28")
	var coll *webstack.TopologyCollision
	require.ErrorAs(t, err, &coll)
	assert.Equal(t, "bastion", coll.Holder)
}
