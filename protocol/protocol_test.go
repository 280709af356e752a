package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	cmd, ok := Parse("REGISTER alice pw1")
	require.True(t, ok)
	assert.Equal(t, "REGISTER", cmd.Name)
	assert.Equal(t, []string{"alice", "pw1"}, cmd.Args)
}

func TestParseNoArgs(t *testing.T) {
	cmd, ok := Parse("LIST_ONLINE")
	require.True(t, ok)
	assert.Equal(t, "LIST_ONLINE", cmd.Name)
	assert.Empty(t, cmd.Args)
}

func TestParseBlank(t *testing.T) {
	_, ok := Parse("")
	assert.False(t, ok)

	_, ok = Parse("   \t ")
	assert.False(t, ok)
}

func TestParseSendKeepsMessageBody(t *testing.T) {
	cmd, ok := Parse("SEND bob hello there world")
	require.True(t, ok)
	assert.Equal(t, "SEND", cmd.Name)
	assert.Equal(t, []string{"bob", "hello there world"}, cmd.Args)
}

func TestParseSendCollapsesWhitespace(t *testing.T) {
	cmd, ok := Parse("SEND bob  hello \t there")
	require.True(t, ok)
	assert.Equal(t, []string{"bob", "hello there"}, cmd.Args)
}

func TestParseSendTooFewArgs(t *testing.T) {
	cmd, ok := Parse("SEND bob")
	require.True(t, ok)
	assert.Equal(t, []string{"bob"}, cmd.Args)
}

func TestParseLeadingWhitespace(t *testing.T) {
	cmd, ok := Parse("  LOGIN alice pw1 ")
	require.True(t, ok)
	assert.Equal(t, "LOGIN", cmd.Name)
	assert.Equal(t, []string{"alice", "pw1"}, cmd.Args)
}
