package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerbosityCountsRepeatedFlags(t *testing.T) {
	var v verbosity
	fs := flag.NewFlagSet("gobanterm", flag.ContinueOnError)
	fs.Var(&v, "v", "")

	require.NoError(t, fs.Parse([]string{"-v", "-v", "-v"}))
	assert.Equal(t, verbosity(3), v)
}

func TestVerbosityDefaultsToZero(t *testing.T) {
	var v verbosity
	fs := flag.NewFlagSet("gobanterm", flag.ContinueOnError)
	fs.Var(&v, "v", "")

	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, verbosity(0), v)
}
