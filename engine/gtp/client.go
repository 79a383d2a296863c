package gtp

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"gobanterm/engine"
	"gobanterm/types"
)

const (
	// Bookkeeping commands answer immediately.
	defaultTimeout = 100 * time.Millisecond
	// genmove may spend real time searching.
	genMoveTimeout = 2 * time.Second
)

// Client drives a GTP engine subprocess. It is the exclusive owner of the
// process's stdin/stdout and serializes commands: the protocol has no
// multiplexing, so correctness requires exactly one outstanding command.
type Client struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser

	// replies carries whole framed replies from the reader goroutine.
	replies chan reply
	// done releases the reader goroutine once nobody will receive again;
	// readerDone closes when it has exited.
	done       chan struct{}
	readerDone chan struct{}
	closeOnce  sync.Once

	mu sync.Mutex
	// stale counts replies owed to timed-out commands. The wire carries no
	// request IDs; a late reply would otherwise be attributed to the next
	// command sent.
	stale int

	commandTimeout time.Duration
	moveTimeout    time.Duration

	log *logrus.Entry
}

type reply struct {
	text string
	err  error
}

// NewClient starts the engine binary in GTP mode and returns a connected
// client. A launch failure is fatal: no engine, no session.
func NewClient(bin string, extraArgs []string) (*Client, error) {
	args := append([]string{"--mode", "gtp"}, extraArgs...)
	cmd := exec.Command(bin, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &engine.LaunchError{Bin: bin, Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &engine.LaunchError{Bin: bin, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return nil, &engine.LaunchError{Bin: bin, Err: err}
	}

	c := newClient(stdin, stdout)
	c.cmd = cmd
	c.log.WithField("bin", bin).Info("engine started")
	return c, nil
}

// newClient wires a client over arbitrary streams. Used directly by tests.
func newClient(stdin io.WriteCloser, stdout io.Reader) *Client {
	c := &Client{
		stdin:          stdin,
		replies:        make(chan reply),
		done:           make(chan struct{}),
		readerDone:     make(chan struct{}),
		commandTimeout: defaultTimeout,
		moveTimeout:    genMoveTimeout,
		log:            logrus.WithField("component", "gtp"),
	}
	go c.readReplies(stdout)
	return c
}

// readReplies frames the reply stream: a reply is every line up to a blank
// line. Runs until the stream closes.
func (c *Client) readReplies(stdout io.Reader) {
	defer close(c.readerDone)
	scanner := bufio.NewScanner(stdout)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			if len(lines) == 0 {
				continue
			}
			select {
			case c.replies <- reply{text: strings.Join(lines, "\n")}:
			case <-c.done:
				return
			}
			lines = nil
			continue
		}
		lines = append(lines, line)
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	select {
	case c.replies <- reply{err: err}:
	case <-c.done:
	}
}

// send writes one command and blocks until its reply or the deadline.
// Serialized: a second caller queues behind any awaited reply.
func (c *Client) send(cmd *Command, timeout time.Duration) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	c.log.WithField("command", cmd.String()).Debug("send")

	if _, err := io.WriteString(c.stdin, cmd.Encode()); err != nil {
		return Response{}, fmt.Errorf("writing command %q: %w", cmd.Name(), err)
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case rep := <-c.replies:
			if rep.err != nil {
				return Response{}, fmt.Errorf("reading reply to %q: %w", cmd.Name(), rep.err)
			}
			if c.stale > 0 {
				// Answer to a command that already timed out; drop it so
				// it is not misattributed to this one.
				c.stale--
				c.log.WithField("reply", rep.text).Warn("discarding stale reply")
				continue
			}
			c.log.WithFields(logrus.Fields{
				"command": cmd.Name(),
				"reply":   rep.text,
				"elapsed": time.Since(start).Milliseconds(),
			}).Debug("recv")
			return parseResponse(cmd.Name(), rep.text)
		case <-deadline.C:
			c.stale++
			err := &engine.TimeoutError{Command: cmd.Name(), Elapsed: time.Since(start)}
			c.log.Warn(err.Error())
			return Response{}, err
		}
	}
}

func (c *Client) text(cmd *Command, timeout time.Duration) (string, error) {
	resp, err := c.send(cmd, timeout)
	if err != nil {
		return "", err
	}
	return resp.Text()
}

// Name returns the engine's self-reported name.
func (c *Client) Name() (string, error) {
	return c.text(NewCommand("name"), c.commandTimeout)
}

// QueryBoardSize returns the engine's configured board size.
func (c *Client) QueryBoardSize() (int, error) {
	text, err := c.text(NewCommand("query_boardsize"), c.commandTimeout)
	if err != nil {
		return 0, err
	}
	size, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &engine.DecodeError{Command: "query_boardsize", Raw: text}
	}
	return size, nil
}

// Play places a stone. Success carries no payload beyond confirmation.
func (c *Client) Play(color types.StoneColor, pos types.Coords) error {
	_, err := c.text(NewCommand("play").Color(color).Vertex(pos), c.commandTimeout)
	return err
}

// ListStones returns every stone of the given color on the board.
func (c *Client) ListStones(color types.StoneColor) ([]types.Stone, error) {
	resp, err := c.send(NewCommand("list_stones").Color(color), c.commandTimeout)
	if err != nil {
		return nil, err
	}
	coords, err := resp.Vertices()
	if err != nil {
		return nil, err
	}
	stones := make([]types.Stone, 0, len(coords))
	for _, pos := range coords {
		stones = append(stones, types.Stone{Color: color, Row: pos.Row, Col: pos.Col})
	}
	return stones, nil
}

// GenMove asks the engine to choose and play a move. The reserved
// keywords are checked before vertex parsing, case-insensitively.
func (c *Client) GenMove(color types.StoneColor) (engine.GenMove, error) {
	text, err := c.text(NewCommand("genmove").Color(color), c.moveTimeout)
	if err != nil {
		return engine.GenMove{}, err
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "pass":
		return engine.GenMove{Kind: engine.GenMovePass}, nil
	case "resign":
		return engine.GenMove{Kind: engine.GenMoveResign}, nil
	}
	pos, err := types.ParseVertex(text)
	if err != nil {
		return engine.GenMove{}, &engine.DecodeError{Command: "genmove", Raw: text}
	}
	return engine.GenMove{Kind: engine.GenMovePosition, Pos: pos}, nil
}

// ShowBoard returns the engine's ASCII board rendering.
func (c *Client) ShowBoard() (string, error) {
	return c.text(NewCommand("showboard"), c.commandTimeout)
}

// Close asks the engine to quit, releases the reader goroutine and reaps
// the subprocess.
func (c *Client) Close() error {
	if c.stdin != nil {
		c.send(NewCommand("quit"), c.commandTimeout)
		c.stdin.Close()
	}
	c.closeOnce.Do(func() { close(c.done) })
	if c.cmd != nil && c.cmd.Process != nil {
		return c.cmd.Wait()
	}
	return nil
}

var _ engine.Engine = (*Client)(nil)
