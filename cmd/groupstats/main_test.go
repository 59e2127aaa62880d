package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/groupstats/common"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCmd(t *testing.T) {
	in := writeInput(t, "id, x, y\nA, 1, 5\nA, 2, 5\nA, 3, nan\nB, 10, 1\nB, 20, 3\n2, 4, 4\n2, 6, 8\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, execute(t, "-i", in, "-k", "id", "-o", out, "--log-level", "error"))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "id,x,x_conf,y,y_conf\n"+
		"2,5.000000,1.959964,6.000000,3.919928\n"+
		"A,2.000000,1.131586,5.000000,0.000000\n"+
		"B,15.000000,9.799820,2.000000,1.959964\n", string(got))
}

func TestRootCmdNoOutput(t *testing.T) {
	in := writeInput(t, "id;x\n1;1\n1;2\n")
	require.NoError(t, execute(t, "-i", in, "-k", "id", "-d", ";", "--quantile", "acklam", "--log-level", "error"))
}

func TestRootCmdEmptyInputWritesNothing(t *testing.T) {
	in := writeInput(t, "id,x\n")
	out := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, execute(t, "-i", in, "-k", "id", "-o", out, "--log-level", "error"))
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRootCmdFailuresWriteNothing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		kind  error
	}{
		{"malformed value", "id,x\nA,1\nA,x\n", nil, common.ErrMalformedInput},
		{"single value group", "id,x\nA,1\nA,2\nB,3\n", nil, common.ErrInsufficientData},
		{"bad confidence", "id,x\nA,1\nA,2\n", []string{"-c", "1.5"}, common.ErrConfiguration},
		{"unknown key", "name,x\nA,1\nA,2\n", nil, common.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := writeInput(t, tt.input)
			out := filepath.Join(t.TempDir(), "out.csv")
			args := append([]string{"-i", in, "-k", "id", "-o", out, "--log-level", "error"}, tt.args...)
			require.ErrorIs(t, execute(t, args...), tt.kind)
			_, err := os.Stat(out)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestRootCmdMissingInput(t *testing.T) {
	err := execute(t, "-k", "id")
	require.ErrorIs(t, err, common.ErrConfiguration)

	err = execute(t, "-i", filepath.Join(t.TempDir(), "none.csv"), "-k", "id", "--log-level", "error")
	require.ErrorIs(t, err, common.ErrConfiguration)
}
