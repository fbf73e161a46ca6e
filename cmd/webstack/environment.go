package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/sirupsen/logrus"

	"github.com/lex00/wetwire-webstack-go/internal/compose"
	"github.com/lex00/wetwire-webstack-go/internal/config"
	"github.com/lex00/wetwire-webstack-go/internal/imports"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	deployment string
	region     string
}

// environment is what a command needs to compose stacks: settings,
// logger and the loaded deployment file.
type environment struct {
	settings       *config.Settings
	log            *logrus.Logger
	deploymentPath string
	deployment     *config.Deployment
	region         string
}

// loadEnvironment reads settings from the environment, applies flag
// overrides and loads the deployment file.
func loadEnvironment(opts *globalOptions) (*environment, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	env := &environment{
		settings:       settings,
		log:            settings.Logger(os.Stderr),
		deploymentPath: settings.Deployment,
	}
	if opts.deployment != "" {
		env.deploymentPath = opts.deployment
	}

	if err := env.reload(); err != nil {
		return nil, err
	}

	env.region = settings.ResolveRegion(env.deployment)
	if opts.region != "" {
		env.region = opts.region
	}
	return env, nil
}

// reload re-reads the deployment file.
func (e *environment) reload() error {
	d, err := config.Load(e.deploymentPath)
	if err != nil {
		return err
	}
	e.deployment = d
	e.log.WithFields(logrus.Fields{
		"deployment": e.deploymentPath,
		"count":      len(d.Stacks),
	}).Debug("Loaded deployment")
	return nil
}

func (e *environment) session() (*session.Session, error) {
	if e.region == "" {
		return nil, fmt.Errorf("no region: set --region, WEBSTACK_REGION or region in %s", e.deploymentPath)
	}
	return e.settings.Session(e.region)
}

// resolver returns an online resolver backed by AWS when online is
// set, and an offline one otherwise.
func (e *environment) resolver(online bool) (*imports.Resolver, error) {
	if !online {
		return &imports.Resolver{}, nil
	}
	sess, err := e.session()
	if err != nil {
		return nil, err
	}
	return &imports.Resolver{Lookup: imports.NewAWSLookup(sess, e.log)}, nil
}

// compose resolves and composes the selected stacks.
func (e *environment) compose(ctx context.Context, stack string, online bool) ([]*compose.Stack, error) {
	r, err := e.resolver(online)
	if err != nil {
		return nil, err
	}
	stacks, err := compose.Deployment(ctx, e.deployment, r, stack)
	if err != nil {
		return nil, err
	}
	for _, s := range stacks {
		e.log.WithFields(logrus.Fields{
			"stack": s.Name,
			"count": s.Graph.Len(),
		}).Debug("Composed stack")
	}
	return stacks, nil
}

// composeOne is compose for commands that operate on a single stack.
func (e *environment) composeOne(ctx context.Context, stack string, online bool) (*compose.Stack, error) {
	if stack == "" {
		if len(e.deployment.Stacks) != 1 {
			return nil, fmt.Errorf("deployment has %d stacks %v: choose one with --stack", len(e.deployment.Stacks), e.deployment.Names())
		}
		stack = e.deployment.Stacks[0].AppName
	}
	stacks, err := e.compose(ctx, stack, online)
	if err != nil {
		return nil, err
	}
	return stacks[0], nil
}
