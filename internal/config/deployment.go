package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	webstack "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/imports"
)

// Deployment is the content of a deployment file: the shared imports and
// every stack co-deployed against them.
//
//	region: eu-west-1
//	imports:
//	  vpcId: {export: core-vpc-id}
//	  hostedZoneId: Z0123456789
//	stacks:
//	  - appName: blog
//	    appId: 7
//	    maxAzs: 2
//	    ...
type Deployment struct {
	Region  string         `yaml:"region"`
	Imports imports.Shared `yaml:"imports"`
	Stacks  []Stack        `yaml:"stacks"`
}

// Load reads a deployment file. Unknown keys are rejected.
func Load(path string) (*Deployment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deployment: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a deployment document.
func Parse(data []byte) (*Deployment, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Deployment
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing deployment: %w", err)
	}
	if err := d.checkNames(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Deployment) checkNames() error {
	seen := map[string]bool{}
	for _, s := range d.Stacks {
		if seen[s.AppName] {
			return webstack.NewConfigurationError("stacks", "duplicate stack %q", s.AppName)
		}
		seen[s.AppName] = true
	}
	return nil
}

// Stack returns the stack with the given appName.
func (d *Deployment) Stack(name string) (Stack, error) {
	for _, s := range d.Stacks {
		if s.AppName == name {
			return s, nil
		}
	}
	return Stack{}, fmt.Errorf("stack %q not found (have %v)", name, d.Names())
}

// Select returns the named stack, or every stack when name is empty.
func (d *Deployment) Select(name string) ([]Stack, error) {
	if name == "" {
		return d.Stacks, nil
	}
	s, err := d.Stack(name)
	if err != nil {
		return nil, err
	}
	return []Stack{s}, nil
}

// Names returns the sorted appNames of all stacks.
func (d *Deployment) Names() []string {
	names := make([]string, 0, len(d.Stacks))
	for _, s := range d.Stacks {
		names = append(names, s.AppName)
	}
	sort.Strings(names)
	return names
}
