package hostbind

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rat/modsync/host"
)

// Console shows notifications on a writer and reads decisions line by line from a reader.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	in  *bufio.Reader
	// lines is fed by a single reader goroutine started on the first question.
	lines chan string
	once  sync.Once
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{out: out, in: bufio.NewReader(in), lines: make(chan string)}
}

func (c *Console) NotifyUser(title, message string, severity host.Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "[%s] %s: %s\n", severity, title, message)
}

// RequestUserDecision prints the question and answers with the first line that selects
// an option. End of input and ctx cancellation answer ChoiceCancel.
func (c *Console) RequestUserDecision(ctx context.Context, decision host.Decision) <-chan host.Choice {
	c.once.Do(func() { go c.read() })
	c.mu.Lock()
	fmt.Fprintf(c.out, "\n== %s ==\n%s\n  1) %s\n  2) %s\n> ", decision.Title, decision.Message, decision.Accept, decision.Decline)
	c.mu.Unlock()

	answer := make(chan host.Choice, 1)
	go func() {
		defer close(answer)
		for {
			select {
			case <-ctx.Done():
				answer <- host.ChoiceCancel
				return
			case line, ok := <-c.lines:
				if !ok {
					answer <- host.ChoiceCancel
					return
				}
				if choice, ok := parseChoice(line, decision); ok {
					answer <- choice
					return
				}
				c.mu.Lock()
				fmt.Fprintf(c.out, "please answer 1 or 2\n> ")
				c.mu.Unlock()
			}
		}
	}()
	return answer
}

func (c *Console) read() {
	defer close(c.lines)
	for {
		line, err := c.in.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			c.lines <- line
		}
		if err != nil {
			return
		}
	}
}

func parseChoice(line string, decision host.Decision) (host.Choice, bool) {
	switch strings.ToLower(line) {
	case "1", "y", "yes", strings.ToLower(decision.Accept):
		return host.ChoiceAccept, true
	case "2", "n", "no", strings.ToLower(decision.Decline):
		return host.ChoiceDecline, true
	}
	return host.ChoiceCancel, false
}
