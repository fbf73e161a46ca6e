package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lex00/cfn-lint-go/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	webstack "github.com/lex00/wetwire-webstack-go"
	"github.com/lex00/wetwire-webstack-go/internal/compose/composetest"
)

func TestCfnLintResult_TotalIssues(t *testing.T) {
	tests := []struct {
		name     string
		result   CfnLintResult
		expected int
	}{
		{
			name:     "empty result",
			result:   CfnLintResult{},
			expected: 0,
		},
		{
			name: "errors only",
			result: CfnLintResult{
				Errors: []string{"error1", "error2"},
			},
			expected: 2,
		},
		{
			name: "mixed issues",
			result: CfnLintResult{
				Errors:        []string{"error1"},
				Warnings:      []string{"warning1", "warning2"},
				Informational: []string{"info1"},
			},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.TotalIssues())
		})
	}
}

func TestFormatMatch(t *testing.T) {
	tests := []struct {
		name     string
		match    lint.Match
		expected string
	}{
		{
			name: "simple match",
			match: lint.Match{
				Rule:    lint.MatchRule{ID: "E3012"},
				Message: "Property has wrong type",
			},
			expected: "E3012: Property has wrong type",
		},
		{
			name: "match with path",
			match: lint.Match{
				Rule:    lint.MatchRule{ID: "W3005"},
				Message: "Obsolete DependsOn",
				Location: lint.MatchLocation{
					Path: []any{"Resources", "Service", "DependsOn", 0},
				},
			},
			expected: "W3005: Obsolete DependsOn (at Resources/Service/DependsOn/0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMatch(tt.match))
		})
	}
}

func TestRunCfnLint_FileNotFound(t *testing.T) {
	result, err := RunCfnLint("/nonexistent/template.json")
	require.NoError(t, err)
	assert.False(t, result.Passed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Template file not found")
}

func TestRunCfnLint_ValidTemplate(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "template.yaml")

	validTemplate := `AWSTemplateFormatVersion: '2010-09-09'
Description: Test template
Resources:
  LogGroup:
    Type: AWS::Logs::LogGroup
    Properties:
      RetentionInDays: 30
`
	require.NoError(t, os.WriteFile(templatePath, []byte(validTemplate), 0644))

	result, err := RunCfnLint(templatePath)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestLintTemplate(t *testing.T) {
	tmpl := &webstack.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]webstack.ResourceDef{
			"LogGroup": {Type: "AWS::Logs::LogGroup", Properties: map[string]any{"RetentionInDays": 30}},
		},
	}

	result, err := LintTemplate(tmpl)
	require.NoError(t, err)
	assert.Equal(t, len(result.Errors) == 0, result.Passed)
}

func TestValidateStack(t *testing.T) {
	stack := composetest.Stack(t)

	result, err := ValidateStack(stack)
	require.NoError(t, err)
	assert.Equal(t, "blog", result.Stack)
	assert.Equal(t, 2*4+2+5+13, result.Resources)
	assert.Equal(t, len(result.Errors) == 0, result.Success)
}

func TestValidateStack_DanglingReference(t *testing.T) {
	stack := composetest.Stack(t)
	// A node referencing another without an explicit edge fails verification.
	_, err := stack.Graph.Add("Orphan", "test", orphan{Target: map[string]string{"Ref": "Service"}})
	require.NoError(t, err)

	result, err := ValidateStack(stack)
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Orphan")
}

type orphan struct {
	Target map[string]string `json:"Target"`
}

func (orphan) ResourceType() string { return "AWS::Logs::LogGroup" }
