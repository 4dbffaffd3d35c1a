package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeygenCommandSucceeds(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}

	err := app.Run([]string{"mlkemctl", "--params", "ML-KEM-512", "keygen"})
	require.NoError(t, err)
}

func TestUnknownParameterSetIsRejected(t *testing.T) {
	app := newApp()
	err := app.Run([]string{"mlkemctl", "--params", "ML-KEM-007", "keygen"})
	require.Error(t, err)
}

func TestEncapsRequiresExactlyOneArgument(t *testing.T) {
	app := newApp()
	err := app.Run([]string{"mlkemctl", "encaps"})
	require.Error(t, err)
}
