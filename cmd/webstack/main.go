// Command webstack composes per-application web stacks on shared AWS
// infrastructure and emits them as CloudFormation templates.
//
// Usage:
//
//	webstack build                 Compose every stack in webstack.yaml
//	webstack build --stack blog    Compose one stack
//	webstack deploy --stack blog   Resolve, compose and apply
//	webstack version               Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "webstack",
		Short: "Compose web application stacks on shared AWS infrastructure",
		Long: `webstack composes the per-application resources of a containerized web
application (subnets, file system access points, task definition, service,
routing rule, certificate and DNS record) on top of a shared VPC, ECS
cluster, load balancer and file system.

Stacks are declared in a deployment file:

    region: eu-west-1
    imports:
      vpcId: {export: core-vpc-id}
      ...
    stacks:
      - appName: blog
        appId: 7
        ...

Then generate CloudFormation:

    webstack build --stack blog`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.deployment, "deployment", "d", "", "Deployment file (default: $WEBSTACK_DEPLOYMENT or webstack.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.region, "region", "", "AWS region (default: $WEBSTACK_REGION or the deployment's region)")

	rootCmd.AddCommand(
		newBuildCmd(opts),
		newGraphCmd(opts),
		newListCmd(opts),
		newValidateCmd(opts),
		newDiffCmd(opts),
		newDeployCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "webstack %s\n", getVersion())
		},
	}
}
