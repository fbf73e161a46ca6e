package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-webstack-go/internal/compose/composetest"
)

// twoStacksYAML adds a second stack to the fixture deployment.
const twoStacksYAML = composetest.DeploymentYAML + `  - appName: shop
    appId: 8
    maxAzs: 2
    domain: example.com
    dnsRecord: shop
    instanceCount: 2
    image: wordpress:6
    hostPort: 8081
    priority: 11
`

func writeDeployment(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webstack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the CLI with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("WEBSTACK_LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
