package main

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-webstack-go/internal/compose"
	"github.com/lex00/wetwire-webstack-go/internal/engine"
	"github.com/lex00/wetwire-webstack-go/internal/template"
)

func newDeployCmd(global *globalOptions) *cobra.Command {
	var stack string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Resolve, compose and apply stacks with CloudFormation",
		Long: `Deploy resolves every import against AWS, checks the deployment for
collisions, composes the selected stacks and applies each one as a
CloudFormation stack named after its appName.

Stacks are applied one at a time. A failed stack stops the deploy and
reports the resource that failed; CloudFormation rolls it back.

Examples:
    webstack deploy --stack blog
    webstack deploy                  # every stack in the deployment`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(global)
			if err != nil {
				return err
			}
			stacks, err := env.compose(cmd.Context(), stack, true)
			if err != nil {
				return err
			}
			sess, err := env.session()
			if err != nil {
				return err
			}
			return runDeploy(cmd.Context(), cmd.OutOrStdout(), env.log, engine.NewCloudFormation(sess, env.log), stacks)
		},
	}

	cmd.Flags().StringVarP(&stack, "stack", "s", "", "Stack (appName) to deploy (default: all)")

	return cmd
}

func runDeploy(ctx context.Context, w io.Writer, log logrus.FieldLogger, eng engine.Engine, stacks []*compose.Stack) error {
	for _, stack := range stacks {
		tmpl, err := template.Build(stack)
		if err != nil {
			return fmt.Errorf("stack %s: %w", stack.Name, err)
		}
		body, err := template.ToJSON(tmpl)
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"stack": stack.Name,
			"count": stack.Graph.Len(),
		}).Info("Applying stack")

		result, err := eng.Apply(ctx, stack.Name, body)
		if err != nil {
			return err
		}

		dnsName := result.Outputs[compose.DNSNameOutput]
		if dnsName == "" {
			dnsName = stack.DNSName
		}
		fmt.Fprintf(w, "%s: %s https://%s\n", stack.Name, result.Action, dnsName)
	}
	return nil
}
