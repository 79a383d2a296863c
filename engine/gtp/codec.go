// Package gtp implements a client for the Go Text Protocol, the
// line-oriented text protocol spoken by engines such as GnuGo.
package gtp

import (
	"strings"

	"gobanterm/engine"
	"gobanterm/types"
)

// Command is a GTP request under construction: a name plus ordered
// color/vertex arguments.
type Command struct {
	name string
	args []string
}

// NewCommand starts a command with the given name.
func NewCommand(name string) *Command {
	return &Command{name: name}
}

// Color appends a color argument ("b" or "w").
func (c *Command) Color(color types.StoneColor) *Command {
	c.args = append(c.args, color.Token())
	return c
}

// Vertex appends a vertex argument, e.g. "Q4".
func (c *Command) Vertex(pos types.Coords) *Command {
	c.args = append(c.args, pos.Vertex())
	return c
}

// Name returns the command name, used in error reporting.
func (c *Command) Name() string { return c.name }

// String returns the space-joined request without the line terminator.
func (c *Command) String() string {
	if len(c.args) == 0 {
		return c.name
	}
	return c.name + " " + strings.Join(c.args, " ")
}

// Encode returns the full wire line for the command.
func (c *Command) Encode() string {
	return c.String() + "\n"
}

// Response is a decoded engine reply, tagged success or failure. Callers
// declare the payload shape they expect by calling Text or Vertices.
type Response struct {
	command string
	ok      bool
	text    string
}

// parseResponse decodes a raw reply (already stripped of its terminating
// blank line). A success reply starts with '=', a failure with '?';
// anything else is a framing error.
func parseResponse(command, raw string) (Response, error) {
	if strings.HasPrefix(raw, "=") {
		return Response{command: command, ok: true, text: trimMarker(raw, "=")}, nil
	}
	if strings.HasPrefix(raw, "?") {
		return Response{command: command, ok: false, text: trimMarker(raw, "?")}, nil
	}
	return Response{}, &engine.DecodeError{Command: command, Raw: raw}
}

func trimMarker(raw, marker string) string {
	return strings.TrimPrefix(strings.TrimPrefix(raw, marker), " ")
}

// Ok reports whether the engine accepted the command.
func (r Response) Ok() bool { return r.ok }

// Text returns the free-form reply text, or the engine's rejection as an
// error.
func (r Response) Text() (string, error) {
	if !r.ok {
		return "", &engine.RejectedError{Command: r.command, Reason: r.text}
	}
	return r.text, nil
}

// Vertices tokenizes the reply text into vertex tokens and parses each
// into coordinates. A token that is not a vertex is a decode error: the
// engine answered, but not in the shape this command promises.
func (r Response) Vertices() ([]types.Coords, error) {
	text, err := r.Text()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(text)
	coords := make([]types.Coords, 0, len(fields))
	for _, token := range fields {
		c, err := types.ParseVertex(token)
		if err != nil {
			return nil, &engine.DecodeError{Command: r.command, Raw: text}
		}
		coords = append(coords, c)
	}
	return coords, nil
}
