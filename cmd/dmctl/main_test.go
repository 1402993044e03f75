package main

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRollCmd(t *testing.T) {
	out, err := runCmd(t, "roll", "d6", "--times", "3", "--seed", "42")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	re := regexp.MustCompile(`^\(Rolled d6: [1-6]\)$`)
	for _, l := range lines {
		assert.Regexp(t, re, l)
	}

	again, err := runCmd(t, "roll", "d6", "--times", "3", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRollCmd_Errors(t *testing.T) {
	_, err := runCmd(t, "roll", "x20")
	assert.Error(t, err)

	_, err = runCmd(t, "roll", "d20", "--times", "0")
	assert.Error(t, err)
}
