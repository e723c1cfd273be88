package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casetrace/casetrace/internal/application/analysis"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommandJSONOutput(t *testing.T) {
	out, err := runCLI(t, "", "analyze", "--json", "hello@test.com owes $500")
	require.NoError(t, err)

	var result analysis.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.PriorityScore)
	assert.Equal(t, []string{"hello@test.com"}, result.Evidence.Emails)
}

func TestAnalyzeCommandTextOutput(t *testing.T) {
	out, err := runCLI(t, "", "analyze", "the trojan dropped a backdoor")
	require.NoError(t, err)

	assert.Contains(t, out, "Classification: Malware")
	assert.Contains(t, out, "Priority score: 0")
}

func TestAnalyzeCommandReadsStdin(t *testing.T) {
	out, err := runCLI(t, "wire $100 to the account", "analyze", "--json")
	require.NoError(t, err)

	var result analysis.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"$100"}, result.Evidence.Money)
}

func TestAnalyzeCommandRejectsEmptyInput(t *testing.T) {
	_, err := runCLI(t, "", "analyze")
	assert.Error(t, err)
}

func TestAnalyzeFileCommandRequiresPath(t *testing.T) {
	_, err := runCLI(t, "", "analyze-file")
	assert.Error(t, err)
}
