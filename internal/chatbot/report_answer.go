package chatbot

import (
	"context"
	"errors"

	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/prompt"
	"github.com/scoutlens/scoutlens/internal/session"
)

// ErrNoReport is returned when a report answer is requested for a session
// that has no report attached.
var ErrNoReport = errors.New("session has no report attached")

// ReportAnswerAgent answers questions grounded in a generated player
// report carried on the session.
type ReportAnswerAgent struct {
	gw llm.Gateway
}

func NewReportAnswerAgent(gw llm.Gateway) *ReportAnswerAgent {
	return &ReportAnswerAgent{gw: gw}
}

// Answer streams a reply grounded in the report, and in the raw player
// data when it is available, through emit and returns the accumulated
// text. The report context must be non-empty; playerData may be empty.
func (a *ReportAnswerAgent) Answer(ctx context.Context, query, reportContext, playerData string, history []session.Turn, emit func(string) error) (string, error) {
	if reportContext == "" {
		return "", ErrNoReport
	}

	b := prompt.NewBuilder().
		System(prompt.Render(reportAnswerSystemPrompt, map[string]string{
			"report":      reportContext,
			"player_data": playerData,
		}))
	appendHistory(b, history)
	b.User(query)

	return streamCompletion(ctx, a.gw, b.Build(), emit)
}
