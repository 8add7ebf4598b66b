package chatbot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/scoutlens/scoutlens/internal/session"
)

// Reply is the outcome of one chat turn.
type Reply struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
	Route     string `json:"route"`
}

// Orchestrator drives a chat turn: rewrite the message against recent
// history, route it, then answer with the general agent or the
// report-grounded agent. Agent failures resolve to a canned apology so a
// turn always produces a reply.
type Orchestrator struct {
	rewriter     *QueryRewriter
	router       *QueryRouter
	general      *GeneralAgent
	reportAnswer *ReportAnswerAgent
	sessions     *session.Store
}

func NewOrchestrator(rewriter *QueryRewriter, router *QueryRouter, general *GeneralAgent, reportAnswer *ReportAnswerAgent, sessions *session.Store) *Orchestrator {
	return &Orchestrator{
		rewriter:     rewriter,
		router:       router,
		general:      general,
		reportAnswer: reportAnswer,
		sessions:     sessions,
	}
}

// Sessions exposes the underlying session store.
func (o *Orchestrator) Sessions() *session.Store {
	return o.sessions
}

// AttachReport serializes a report, and optionally the raw player data it
// was generated from, onto the session so report questions can be
// answered against them.
func (o *Orchestrator) AttachReport(sessionID string, rep, playerData map[string]any) error {
	blob, _, _, err := encodeReportContext(rep, playerData)
	if err != nil {
		return err
	}
	if !o.sessions.SetContext(sessionID, blob) {
		return fmt.Errorf("unknown session %s", sessionID)
	}
	return nil
}

// encodeReportContext serializes the report and optional player data into
// the session context blob plus the two prompt parts.
func encodeReportContext(rep, playerData map[string]any) (blob, reportJSON, playerJSON string, err error) {
	doc, err := json.Marshal(rep)
	if err != nil {
		return "", "", "", fmt.Errorf("encoding report context: %w", err)
	}
	reportJSON = string(doc)
	blob = reportJSON
	if len(playerData) > 0 {
		pd, err := json.Marshal(playerData)
		if err != nil {
			return "", "", "", fmt.Errorf("encoding player data context: %w", err)
		}
		playerJSON = string(pd)
		blob = fmt.Sprintf("Report Data:\n%s\n\nOriginal Player Data:\n%s", reportJSON, playerJSON)
	}
	return blob, reportJSON, playerJSON, nil
}

// ProcessMessage handles one chat turn. An empty or unknown sessionID
// starts a fresh session; the returned reply carries the session to use on
// the next turn. Streaming output goes through emit as it arrives.
func (o *Orchestrator) ProcessMessage(ctx context.Context, sessionID, userID, message string, emit func(string) error) (*Reply, error) {
	if sessionID == "" || !o.sessions.Exists(sessionID) {
		sessionID = o.sessions.Start(userID)
	}

	// History is captured before the new message is stored so the agents
	// see prior turns and the query separately.
	history := o.sessions.History(sessionID)
	o.sessions.Append(sessionID, session.RoleUser, message)

	rewritten := o.rewriter.Rewrite(ctx, message, history)
	route := o.router.Route(ctx, rewritten)

	reportContext := ""
	if route == RouteReport {
		reportContext, _ = o.sessions.Context(sessionID)
		if reportContext == "" {
			log.Printf("chatbot: report route but session %s has no report attached, answering as general", sessionID)
			route = RouteGeneral
		}
	}

	var answer string
	switch route {
	case RouteReport:
		answer = o.runAgent(emit, func() (string, error) {
			return o.reportAnswer.Answer(ctx, rewritten, reportContext, "", history, emit)
		})
	default:
		answer = o.runAgent(emit, func() (string, error) {
			return o.general.Answer(ctx, rewritten, history, emit)
		})
	}

	o.sessions.Append(sessionID, session.RoleAssistant, answer)
	return &Reply{SessionID: sessionID, Content: answer, Route: route}, nil
}

// ReportChat answers a question directly against the given report and
// optional raw player data, attaching them to the session for follow-up
// turns. The router is skipped; the turn is report-bound by construction.
func (o *Orchestrator) ReportChat(ctx context.Context, sessionID, userID string, rep, playerData map[string]any, message string, emit func(string) error) (*Reply, error) {
	if sessionID == "" || !o.sessions.Exists(sessionID) {
		sessionID = o.sessions.Start(userID)
	}
	blob, reportJSON, playerJSON, err := encodeReportContext(rep, playerData)
	if err != nil {
		return nil, err
	}
	if !o.sessions.SetContext(sessionID, blob) {
		return nil, fmt.Errorf("unknown session %s", sessionID)
	}

	history := o.sessions.History(sessionID)
	o.sessions.Append(sessionID, session.RoleUser, message)

	rewritten := o.rewriter.Rewrite(ctx, message, history)
	answer := o.runAgent(emit, func() (string, error) {
		return o.reportAnswer.Answer(ctx, rewritten, reportJSON, playerJSON, history, emit)
	})

	o.sessions.Append(sessionID, session.RoleAssistant, answer)
	return &Reply{SessionID: sessionID, Content: answer, Route: RouteReport}, nil
}

// runAgent executes an answering agent and converts failures and empty
// streams into apology replies, emitting them so streaming clients see
// the terminal state. Successful answers are trimmed before persistence.
func (o *Orchestrator) runAgent(emit func(string) error, fn func() (string, error)) string {
	answer, err := fn()
	if err != nil {
		log.Printf("chatbot: agent failed: %v", err)
		if emitErr := emitAll(emit, errorApology); emitErr != nil {
			log.Printf("chatbot: emitting apology: %v", emitErr)
		}
		return errorApology
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		log.Printf("chatbot: agent produced an empty answer")
		if emitErr := emitAll(emit, emptyApology); emitErr != nil {
			log.Printf("chatbot: emitting apology: %v", emitErr)
		}
		return emptyApology
	}
	return answer
}

func emitAll(emit func(string) error, s string) error {
	if emit == nil {
		return nil
	}
	return emit(s)
}
