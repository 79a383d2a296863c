package gtp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobanterm/engine"
	"gobanterm/types"
)

func TestCommandEncoding(t *testing.T) {
	assert.Equal(t, "name\n", NewCommand("name").Encode())
	assert.Equal(t,
		"play b Q4\n",
		NewCommand("play").Color(types.Black).Vertex(types.Coords{Row: 4, Col: 16}).Encode())
	assert.Equal(t,
		"list_stones w\n",
		NewCommand("list_stones").Color(types.White).Encode())
}

func TestParseResponseMarkers(t *testing.T) {
	resp, err := parseResponse("name", "= GNU Go")
	require.NoError(t, err)
	assert.True(t, resp.Ok())
	text, err := resp.Text()
	require.NoError(t, err)
	assert.Equal(t, "GNU Go", text)

	resp, err = parseResponse("play", "? illegal move")
	require.NoError(t, err)
	assert.False(t, resp.Ok())
	_, err = resp.Text()
	var rejected *engine.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "play", rejected.Command)
	assert.Equal(t, "illegal move", rejected.Reason)
}

func TestParseResponseBadFraming(t *testing.T) {
	_, err := parseResponse("name", "GNU Go")
	var decode *engine.DecodeError
	assert.ErrorAs(t, err, &decode)
}

func TestVerticesDecodesStoneList(t *testing.T) {
	resp, err := parseResponse("list_stones", "= D4 Q16 K10")
	require.NoError(t, err)

	coords, err := resp.Vertices()
	require.NoError(t, err)
	assert.Equal(t, []types.Coords{
		{Row: 4, Col: 4},
		{Row: 16, Col: 16},
		{Row: 10, Col: 10},
	}, coords)
}

func TestVerticesEmptyList(t *testing.T) {
	resp, err := parseResponse("list_stones", "=")
	require.NoError(t, err)

	coords, err := resp.Vertices()
	require.NoError(t, err)
	assert.Empty(t, coords)
}

func TestVerticesBadTokenIsDecodeError(t *testing.T) {
	resp, err := parseResponse("list_stones", "= D4 bogus Q16")
	require.NoError(t, err)

	_, err = resp.Vertices()
	var decode *engine.DecodeError
	require.ErrorAs(t, err, &decode)
	// A malformed payload is a protocol mismatch, not an engine rejection.
	var rejected *engine.RejectedError
	assert.False(t, errors.As(err, &rejected))
}

func TestVerticesOnRejectedResponse(t *testing.T) {
	resp, err := parseResponse("list_stones", "? unknown command")
	require.NoError(t, err)

	_, err = resp.Vertices()
	var rejected *engine.RejectedError
	assert.ErrorAs(t, err, &rejected)
}
