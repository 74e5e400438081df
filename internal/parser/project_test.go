package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callstream/internal/ports"
)

func TestProjectArgsPartialLeavesMissingFieldsZero(t *testing.T) {
	typed, unknown, err := projectArgs(ports.ToolFileWrite, map[string]any{"path": "a.txt"}, false)
	require.NoError(t, err)
	assert.Empty(t, unknown)

	args, ok := typed.(ports.FileWriteArgs)
	require.True(t, ok)
	assert.Equal(t, "a.txt", args.Path)
	assert.Empty(t, args.Content)
}

func TestProjectArgsStrictEnforcesRequired(t *testing.T) {
	_, _, err := projectArgs(ports.ToolFileWrite, map[string]any{"path": "a.txt"}, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, err.Error(), "content")

	// Null counts as missing.
	_, _, err = projectArgs(ports.ToolBash, map[string]any{"command": nil}, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestProjectArgsPartialAndStrictAgree(t *testing.T) {
	args := map[string]any{
		"path":        "a.txt",
		"old_string":  "foo",
		"new_string":  "bar",
		"replace_all": "true",
	}
	partial, _, err := projectArgs(ports.ToolFileEdit, args, false)
	require.NoError(t, err)
	strict, _, err := projectArgs(ports.ToolFileEdit, args, true)
	require.NoError(t, err)
	assert.Equal(t, partial, strict)
}

func TestProjectArgsReportsUnknownKeys(t *testing.T) {
	_, unknown, err := projectArgs(ports.ToolBash, map[string]any{
		"command": "ls",
		"cwd":     "/tmp",
		"shell":   "zsh",
	}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"cwd", "shell"}, unknown)
}

func TestProjectArgsUnknownToolName(t *testing.T) {
	typed, unknown, err := projectArgs("no_such_tool", map[string]any{"x": 1}, true)
	assert.NoError(t, err)
	assert.Nil(t, typed)
	assert.Nil(t, unknown)
}

func TestEveryProjectionMatchesItsToolName(t *testing.T) {
	for name, entry := range projections {
		typed := entry.build(getter{args: map[string]any{}})
		require.NotNil(t, typed, "tool %s", name)
		assert.Equal(t, name, typed.ArgsFor(), "tool %s", name)
	}
}

func TestGetterCoercions(t *testing.T) {
	g := getter{args: map[string]any{
		"s_plain":  "text",
		"s_num":    float64(7),
		"n_float":  float64(3),
		"n_string": "42",
		"b_bool":   true,
		"b_string": "False",
		"b_other":  "yes",
		"l_array":  []any{"a", "b"},
		"l_string": `["x","y"]`,
		"l_plain":  "single",
	}}

	assert.Equal(t, "text", g.str("s_plain"))
	assert.Equal(t, "7", g.str("s_num"))
	assert.Equal(t, "", g.str("absent"))

	assert.Equal(t, 3, g.num("n_float"))
	assert.Equal(t, 42, g.num("n_string"))
	assert.Equal(t, 0, g.num("absent"))

	assert.True(t, g.boolean("b_bool"))
	assert.False(t, g.boolean("b_string"))
	assert.False(t, g.boolean("b_other"))

	assert.Equal(t, []string{"a", "b"}, g.strList("l_array"))
	assert.Equal(t, []string{"x", "y"}, g.strList("l_string"))
	assert.Equal(t, []string{"single"}, g.strList("l_plain"))
	assert.Nil(t, g.strList("absent"))
}

func TestBuildRawParamsUsesFixedVocabulary(t *testing.T) {
	params := buildRawParams(map[string]any{
		"command":  "ls",
		"timeout":  float64(30),
		"evil_key": "ignored",
	})
	assert.Equal(t, map[string]string{
		"command": "ls",
		"timeout": "30",
	}, params)

	assert.Nil(t, buildRawParams(nil))
	assert.Nil(t, buildRawParams(map[string]any{"evil_key": "x"}))
}
