package compose

import (
	"context"
	"fmt"

	"github.com/lex00/wetwire-webstack-go/internal/config"
	"github.com/lex00/wetwire-webstack-go/internal/imports"
	"github.com/lex00/wetwire-webstack-go/internal/topology"
)

// Deployment resolves every stack of d, checks that no two stacks (or a
// stack and a reservation) claim the same address block, listener
// priority or host port, then composes the stacks named in only (all when empty).
//
// Collisions are checked across the whole deployment even when only one
// stack is composed.
func Deployment(ctx context.Context, d *config.Deployment, r *imports.Resolver, only string) ([]*Stack, error) {
	selected, err := d.Select(only)
	if err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(selected))
	for _, s := range selected {
		want[s.AppName] = true
	}

	shared := d.Imports.WithDefaults()
	ledger := topology.NewLedger(shared.VpcCidr)
	if err := ledger.Reserve(shared.ReservedCidrs, shared.ReservedPriorities); err != nil {
		return nil, err
	}

	resolved := make(map[string]*imports.References, len(d.Stacks))
	for _, s := range d.Stacks {
		if err := s.StackConfig.Validate(); err != nil {
			return nil, fmt.Errorf("stack %s: %w", s.AppName, err)
		}
		refs, err := r.Resolve(ctx, d.Imports, s.App, s.Identity())
		if err != nil {
			return nil, fmt.Errorf("stack %s: %w", s.AppName, err)
		}
		claim := topology.StackClaim{
			Owner:    s.AppName,
			AppID:    s.AppID,
			AZCount:  s.MaxAzs,
			Priority: refs.Priority,
			HostPort: refs.HostPort,
		}
		if err := ledger.Claim(claim); err != nil {
			return nil, err
		}
		resolved[s.AppName] = refs
	}

	var stacks []*Stack
	for _, s := range d.Stacks {
		if !want[s.AppName] {
			continue
		}
		stack, err := Compose(s.StackConfig, resolved[s.AppName])
		if err != nil {
			return nil, fmt.Errorf("stack %s: %w", s.AppName, err)
		}
		stacks = append(stacks, stack)
	}
	return stacks, nil
}
