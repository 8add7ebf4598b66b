package chatbot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/prompt"
	"github.com/scoutlens/scoutlens/internal/session"
)

// GeneralAgent answers general soccer questions with the session history
// as conversational context.
type GeneralAgent struct {
	gw llm.Gateway
}

func NewGeneralAgent(gw llm.Gateway) *GeneralAgent {
	return &GeneralAgent{gw: gw}
}

// Answer streams the reply through emit and returns the accumulated text.
// A nil emit discards fragments as they arrive.
func (a *GeneralAgent) Answer(ctx context.Context, query string, history []session.Turn, emit func(string) error) (string, error) {
	b := prompt.NewBuilder().System(generalSystemPrompt)
	appendHistory(b, history)
	b.User(query)

	return streamCompletion(ctx, a.gw, b.Build(), emit)
}

// appendHistory replays stored turns as chat messages.
func appendHistory(b *prompt.Builder, history []session.Turn) {
	for _, t := range history {
		switch t.Role {
		case session.RoleAssistant:
			b.Assistant(t.Content)
		default:
			b.User(t.Content)
		}
	}
}

// streamCompletion runs a streaming completion, forwarding each fragment
// to emit and accumulating the full reply. On a mid-stream error the text
// received so far is returned alongside the error.
func streamCompletion(ctx context.Context, gw llm.Gateway, messages []llm.Message, emit func(string) error) (string, error) {
	stream, err := gw.CompleteStream(ctx, llm.CompletionRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("opening completion stream: %w", err)
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), fmt.Errorf("receiving stream chunk: %w", err)
		}
		sb.WriteString(chunk)
		if emit != nil {
			if err := emit(chunk); err != nil {
				return sb.String(), fmt.Errorf("emitting stream chunk: %w", err)
			}
		}
	}
}
