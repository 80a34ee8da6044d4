package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dictionary/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against a file backend in dir
func run(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--backend", "file", "--data-dir", dir}, args...))

	err := root.Execute()
	return out.String(), err
}

func newDataDir(t *testing.T) string {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	return t.TempDir()
}

func TestCommands_AddListCategories(t *testing.T) {
	dir := newDataDir(t)

	out, err := run(t, dir, "", "add", "Rose", "A flower", "Flowers")
	require.NoError(t, err)
	assert.Contains(t, out, "Added: Rose - A flower [Flowers]")

	_, err = run(t, dir, "", "add", "Oak", "A tree", "Trees")
	require.NoError(t, err)
	_, err = run(t, dir, "", "add", "Lily", "A flower", "Flowers")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "words.json"))
	require.NoError(t, err)
	assert.Equal(t,
		`[{"word":"Rose","meaning":"A flower","category":"Flowers"},{"word":"Oak","meaning":"A tree","category":"Trees"},{"word":"Lily","meaning":"A flower","category":"Flowers"}]`,
		string(data),
	)

	out, err = run(t, dir, "", "list", "--category", "Flowers")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Rose - A flower [Flowers]")
	assert.Contains(t, out, "3. Lily - A flower [Flowers]")
	assert.NotContains(t, out, "Oak")
	assert.Contains(t, out, "Total words: 3")

	out, err = run(t, dir, "", "list", "--search", "OA")
	require.NoError(t, err)
	assert.Contains(t, out, "2. Oak - A tree [Trees]")
	assert.NotContains(t, out, "Rose")

	out, err = run(t, dir, "", "categories")
	require.NoError(t, err)
	assert.Equal(t, "Flowers (2)\nTrees (1)\n", out)
}

func TestCommands_AddRejectsBlankField(t *testing.T) {
	dir := newDataDir(t)

	_, err := run(t, dir, "", "add", "Rose", "   ", "Flowers")

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "meaning", verr.Field)

	_, statErr := os.Stat(filepath.Join(dir, "words.json"))
	assert.True(t, os.IsNotExist(statErr), "nothing is written for an invalid entry")
}

func TestCommands_Delete(t *testing.T) {
	tests := []struct {
		name      string
		stdin     string
		args      []string
		wantOut   string
		wantWords []string
	}{
		{
			name:      "answer yes",
			stdin:     "y\n",
			args:      []string{"delete", "1"},
			wantOut:   "Deleted: Rose - A flower [Flowers]",
			wantWords: []string{"Oak"},
		},
		{
			name:      "answer no",
			stdin:     "n\n",
			args:      []string{"delete", "1"},
			wantOut:   "Kept.",
			wantWords: []string{"Rose", "Oak"},
		},
		{
			name:      "no answer",
			stdin:     "",
			args:      []string{"delete", "2"},
			wantOut:   "Kept.",
			wantWords: []string{"Rose", "Oak"},
		},
		{
			name:      "yes flag skips the prompt",
			stdin:     "",
			args:      []string{"delete", "2", "--yes"},
			wantOut:   "Deleted: Oak - A tree [Trees]",
			wantWords: []string{"Rose"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newDataDir(t)
			_, err := run(t, dir, "", "add", "Rose", "A flower", "Flowers")
			require.NoError(t, err)
			_, err = run(t, dir, "", "add", "Oak", "A tree", "Trees")
			require.NoError(t, err)

			out, err := run(t, dir, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantOut)

			out, err = run(t, dir, "", "list")
			require.NoError(t, err)
			for _, w := range tt.wantWords {
				assert.Contains(t, out, w)
			}
			assert.Contains(t, out, fmt.Sprintf("Total words: %d", len(tt.wantWords)))
		})
	}
}

func TestCommands_DeleteOutOfRange(t *testing.T) {
	dir := newDataDir(t)
	_, err := run(t, dir, "", "add", "Rose", "A flower", "Flowers")
	require.NoError(t, err)

	for _, arg := range []string{"0", "2", "abc"} {
		_, err := run(t, dir, "", "delete", arg, "--yes")
		assert.Error(t, err, arg)
	}

	out, err := run(t, dir, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Rose - A flower [Flowers]")
}

func TestCommands_CorruptSlotStartsEmpty(t *testing.T) {
	dir := newDataDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.json"), []byte("{not json"), 0o600))

	out, err := run(t, dir, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No words found.")
	assert.Contains(t, out, "Total words: 0")

	data, err := os.ReadFile(filepath.Join(dir, "words.json"))
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestPromptConfirmer(t *testing.T) {
	entry := domain.WordEntry{Word: "Rose", Meaning: "A flower", Category: "Flowers"}

	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "  yes  \n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
		{input: "yep\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			confirm := promptConfirmer(strings.NewReader(tt.input), &out)

			assert.Equal(t, tt.want, confirm(entry))
			assert.Equal(t, "Delete Rose - A flower [Flowers]? [y/N]: ", out.String())
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := newLogger(level)
		require.NoError(t, err, level)
		assert.NotNil(t, logger)
	}

	_, err := newLogger("loud")
	assert.Error(t, err)
}
