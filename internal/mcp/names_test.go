package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCanonicalName(t *testing.T) {
	parsed := Parse("mcp--serverA--toolB")
	require.NotNil(t, parsed)
	assert.Equal(t, "serverA", parsed.Server)
	assert.Equal(t, "toolB", parsed.Tool)
}

func TestParseRejectsWrongSegmentCount(t *testing.T) {
	assert.Nil(t, Parse("mcp--onlyOneSegment"))
	assert.Nil(t, Parse("mcp--a--b--c"))
	assert.Nil(t, Parse("mcp--"))
	assert.Nil(t, Parse("mcp----tool"))
	assert.Nil(t, Parse("mcp--server--"))
}

func TestParseRejectsNonDynamicNames(t *testing.T) {
	assert.Nil(t, Parse("bash"))
	assert.Nil(t, Parse(""))
	assert.Nil(t, Parse("mcpserver--tool"))
}

func TestNormalizeAlternateSeparator(t *testing.T) {
	normalized := Normalize("mcp__serverA__toolB")
	assert.Equal(t, "mcp--serverA--toolB", normalized)

	parsed := Parse(normalized)
	require.NotNil(t, parsed)
	assert.Equal(t, "serverA", parsed.Server)
	assert.Equal(t, "toolB", parsed.Tool)
}

func TestNormalizeLeavesOtherNamesAlone(t *testing.T) {
	assert.Equal(t, "bash", Normalize("bash"))
	assert.Equal(t, "mcp--a--b", Normalize("mcp--a--b"))
	assert.Equal(t, "my__tool", Normalize("my__tool"))
}

func TestIsDynamic(t *testing.T) {
	assert.True(t, IsDynamic("mcp--a--b"))
	assert.True(t, IsDynamic("mcp__a__b"))
	assert.False(t, IsDynamic("bash"))
	assert.False(t, IsDynamic("mcptool"))
}

func TestFormatRoundTrip(t *testing.T) {
	name := Format("github", "create_issue")
	assert.Equal(t, "mcp--github--create_issue", name)

	parsed := Parse(name)
	require.NotNil(t, parsed)
	assert.Equal(t, "github", parsed.Server)
	assert.Equal(t, "create_issue", parsed.Tool)
}
