package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestCompareCmd(t *testing.T) {
	out := execute(t, "compare", "cube:1", "cube:2")

	assert.Contains(t, out, "histogram   1.0000")
	assert.Contains(t, out, "volume      0.1250")
	assert.Contains(t, out, "(59%)")
}

func TestSearchCmd(t *testing.T) {
	out := execute(t, "search", "--top-k", "2", "cube:2", "cube:2", "box:1x1x40", "sphere:1")

	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "100%")
	assert.NotContains(t, out, "box:1x1x40")
}

func TestDemoCmd(t *testing.T) {
	out := execute(t, "demo", "--count", "200", "--top-k", "3", "--query", "sphere:20")

	assert.Contains(t, out, "indexed 200 models")
	assert.Regexp(t, `models\s+200`, out)
}
