package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-webstack-go/internal/compose/composetest"
)

func TestGraphCmd_Dot(t *testing.T) {
	path := writeDeployment(t, composetest.DeploymentYAML)

	out, err := execute(t, "graph", "-d", path, "--reasons")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "ListenerCertificate")
	assert.Contains(t, out, "attached after routing rule")
}

func TestGraphCmd_RequiresStackWhenSeveral(t *testing.T) {
	path := writeDeployment(t, twoStacksYAML)

	_, err := execute(t, "graph", "-d", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--stack")

	out, err := execute(t, "graph", "-d", path, "--stack", "shop", "-f", "mermaid")
	require.NoError(t, err)
	assert.Contains(t, out, "AliasRecord")
}

func TestGraphCmd_UnknownFormat(t *testing.T) {
	path := writeDeployment(t, composetest.DeploymentYAML)

	_, err := execute(t, "graph", "-d", path, "-f", "svg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
