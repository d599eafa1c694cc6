package hostbind

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rat/modsync/host"
)

var decision = host.Decision{Title: "Question", Message: "Download?", Accept: "Download and Install", Decline: "Cancel Connection"}

func TestConsoleNotify(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out)
	c.NotifyUser("Server Incompatible", "no answer", host.SeverityWarning)
	require.Equal(t, "[warning] Server Incompatible: no answer\n", out.String())
}

func TestConsoleDecision(t *testing.T) {
	for _, tc := range []struct {
		input  string
		choice host.Choice
	}{
		{input: "1\n", choice: host.ChoiceAccept},
		{input: "maybe\n\nyes\n", choice: host.ChoiceAccept},
		{input: "2\n", choice: host.ChoiceDecline},
		{input: "cancel connection", choice: host.ChoiceDecline},
		{input: "", choice: host.ChoiceCancel},
		{input: "what\n", choice: host.ChoiceCancel},
	} {
		t.Run(tc.input, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConsole(strings.NewReader(tc.input), &out)
			choice := <-c.RequestUserDecision(context.Background(), decision)
			require.Equal(t, tc.choice, choice)
			require.Contains(t, out.String(), "== Question ==")
			require.Contains(t, out.String(), "1) Download and Install")
		})
	}
}

func TestConsoleDecisionCancelled(t *testing.T) {
	c := NewConsole(strings.NewReader(""), &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	choice, ok := <-c.RequestUserDecision(ctx, decision)
	require.True(t, ok)
	require.Equal(t, host.ChoiceCancel, choice)
}
