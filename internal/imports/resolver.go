package imports

import (
	"context"
	"errors"
	"fmt"

	webstack "github.com/lex00/wetwire-webstack-go"
)

// ErrNotFound is returned by a Lookup when an export or parameter does
// not exist in the account.
var ErrNotFound = errors.New("not found")

// Lookup reads imported values from the account a stack deploys into.
type Lookup interface {
	// Export returns the value of a CloudFormation export.
	Export(ctx context.Context, name string) (string, error)
	// Parameter returns the value of an SSM String parameter.
	Parameter(ctx context.Context, path string) (string, error)
	// AvailabilityZones returns the zones available to the account in
	// the deployment region, sorted by name.
	AvailabilityZones(ctx context.Context) ([]string, error)
}

// Identity is the part of a stack's configuration the import layer needs.
type Identity struct {
	AppName string
	DNSName string
}

// Resolver turns Shared and App values into References.
//
// With a nil Lookup the resolver works offline: references are emitted
// as Fn::ImportValue or SSM dynamic references without checking that
// they exist, and numeric values must be literals.
type Resolver struct {
	Lookup Lookup
}

// Resolve validates and resolves the imported values for one stack.
func (r *Resolver) Resolve(ctx context.Context, shared Shared, app App, id Identity) (*References, error) {
	shared = shared.WithDefaults()
	if shared.SecretsPrefix == "" {
		shared.SecretsPrefix = "/" + id.AppName + "/mysql"
	}

	refs := &References{
		Shared:  shared,
		Image:   app.Image,
		DNSName: id.DNSName,
	}

	if r.Lookup != nil {
		if err := r.checkExist(ctx, append(shared.values(), app.values()...)); err != nil {
			return nil, err
		}
		zones, err := r.availabilityZones(ctx, refs.AvailabilityZones)
		if err != nil {
			return nil, err
		}
		refs.AvailabilityZones = zones
	}

	var err error
	if refs.HostPort, err = r.resolveInt(ctx, "hostPort", app.HostPort); err != nil {
		return nil, err
	}
	if refs.Priority, err = r.resolveInt(ctx, "priority", app.Priority); err != nil {
		return nil, err
	}

	if err := refs.Validate(); err != nil {
		return nil, err
	}
	return refs, nil
}

// availabilityZones returns listed, or every zone of the account when
// listed is empty. A listed zone the account does not offer is
// DependencyUnavailable.
func (r *Resolver) availabilityZones(ctx context.Context, listed []string) ([]string, error) {
	available, err := r.Lookup.AvailabilityZones(ctx)
	if err != nil {
		return nil, &webstack.DependencyUnavailable{Reference: "availability zones", Err: err}
	}
	if len(listed) == 0 {
		return available, nil
	}

	offered := make(map[string]bool, len(available))
	for _, z := range available {
		offered[z] = true
	}
	for _, z := range listed {
		if !offered[z] {
			return nil, &webstack.DependencyUnavailable{
				Reference: "availability zone " + z,
				Err:       fmt.Errorf("zone %q: %w", z, ErrNotFound),
			}
		}
	}
	return listed, nil
}

// checkExist verifies every export and SSM reference can be read.
func (r *Resolver) checkExist(ctx context.Context, values []namedValue) error {
	for _, nv := range values {
		if _, err := r.lookup(ctx, nv.value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) lookup(ctx context.Context, v Value) (string, error) {
	var (
		out string
		err error
	)
	switch {
	case v.Export != "":
		out, err = r.Lookup.Export(ctx, v.Export)
	case v.SSM != "":
		out, err = r.Lookup.Parameter(ctx, v.SSM)
	default:
		return v.Literal, nil
	}
	if err != nil {
		return "", &webstack.DependencyUnavailable{Reference: v.String(), Err: err}
	}
	return out, nil
}

// resolveInt returns 0 for an absent value; Validate reports it.
func (r *Resolver) resolveInt(ctx context.Context, key string, v Value) (int, error) {
	if v.IsZero() {
		return 0, nil
	}
	resolved := v
	if !v.IsLiteral() {
		if r.Lookup == nil {
			return 0, webstack.NewConfigurationError(key, "%s must be a literal number when resolving offline", v)
		}
		raw, err := r.lookup(ctx, v)
		if err != nil {
			return 0, err
		}
		resolved = Literal(raw)
	}
	n, err := resolved.Int()
	if err != nil {
		return 0, webstack.NewConfigurationError(key, "%s is not a number: %q", v, resolved.Literal)
	}
	return n, nil
}

// StaticLookup is a Lookup backed by fixed maps.
type StaticLookup struct {
	Exports    map[string]string
	Parameters map[string]string
	Zones      []string
}

// Export implements Lookup.
func (s StaticLookup) Export(_ context.Context, name string) (string, error) {
	if v, ok := s.Exports[name]; ok {
		return v, nil
	}
	return "", fmt.Errorf("export %q: %w", name, ErrNotFound)
}

// Parameter implements Lookup.
func (s StaticLookup) Parameter(_ context.Context, path string) (string, error) {
	if v, ok := s.Parameters[path]; ok {
		return v, nil
	}
	return "", fmt.Errorf("parameter %q: %w", path, ErrNotFound)
}

// AvailabilityZones implements Lookup.
func (s StaticLookup) AvailabilityZones(context.Context) ([]string, error) {
	return s.Zones, nil
}
