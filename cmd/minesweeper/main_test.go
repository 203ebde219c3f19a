package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, cmd := range rootCmd.Commands() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPresetsCommand(t *testing.T) {
	out, err := run(t, "", "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	for _, name := range []string{"easy", "medium", "hard", "surprise"} {
		assert.Contains(t, out, name)
	}
}

func TestPlayCommand(t *testing.T) {
	out, err := run(t, "o 0 0\n", "play", "--width", "3", "--height", "2", "--mines", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "3x2, 0 mines\n")
	assert.Contains(t, out, "you won!")
}

func TestPlaySeedIsReproducible(t *testing.T) {
	first, err := run(t, "o 0 0\nq\n", "play", "--preset", "easy", "--seed", "7")
	require.NoError(t, err)
	second, err := run(t, "o 0 0\nq\n", "play", "--preset", "easy", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPlayUnknownPreset(t *testing.T) {
	_, err := run(t, "", "play", "--preset", "nightmare")
	assert.ErrorContains(t, err, "unknown preset")
}
