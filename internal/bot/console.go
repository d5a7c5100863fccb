package bot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
)

// Console is a Transport for a single chat over a line-based stream,
// usually stdin and stdout.
type Console struct {
	in       io.Reader
	out      io.Writer
	chatID   int64
	username string

	once  sync.Once
	lines chan string
	err   error
}

// NewConsole creates a Console that reports every line as chatID.
func NewConsole(in io.Reader, out io.Writer, chatID int64, username string) *Console {
	return &Console{
		in:       in,
		out:      out,
		chatID:   chatID,
		username: username,
		lines:    make(chan string),
	}
}

func (c *Console) read() {
	defer close(c.lines)
	sc := bufio.NewScanner(c.in)
	for sc.Scan() {
		c.lines <- sc.Text()
	}
	c.err = sc.Err()
}

// Receive blocks until the next line or ctx cancellation. A closed input
// yields io.EOF.
func (c *Console) Receive(ctx context.Context) (Message, error) {
	c.once.Do(func() { go c.read() })

	select {
	case <-ctx.Done():
		return Message{}, ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			if c.err != nil {
				return Message{}, fmt.Errorf("read console: %w", c.err)
			}
			return Message{}, io.EOF
		}
		return Message{ChatID: c.chatID, Username: c.username, Text: line}, nil
	}
}

// Send prints text followed by a prompt.
func (c *Console) Send(_ context.Context, _ int64, text string) error {
	_, err := fmt.Fprintf(c.out, "%s\n> ", text)
	return err
}
