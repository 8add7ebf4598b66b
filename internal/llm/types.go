package llm

import (
	"context"
	"encoding/json"
)

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// Response format types accepted by FormatType.
const (
	FormatText       = "text"
	FormatJSONObject = "json_object"
	FormatJSONSchema = "json_schema"
)

// ResponseFormat constrains the shape of the model output. For
// FormatJSONSchema, Schema is sent verbatim as the provider's schema
// constraint.
type ResponseFormat struct {
	Type       string          `koanf:"type" yaml:"type"`
	SchemaName string          `koanf:"schema_name" yaml:"schema_name,omitempty"`
	Schema     json.RawMessage `koanf:"-" yaml:"-"`
	Strict     bool            `koanf:"strict" yaml:"strict,omitempty"`
}

// AgentConfig holds per-agent model parameters. Any zero/nil field falls
// back to the gateway's hard defaults. Pointer fields distinguish "unset"
// from an explicit zero; unset parameters are omitted from the outbound
// request rather than sent as null.
type AgentConfig struct {
	Model               string          `koanf:"model" yaml:"model,omitempty"`
	Temperature         *float64        `koanf:"temperature" yaml:"temperature,omitempty"`
	MaxCompletionTokens int             `koanf:"max_completion_tokens" yaml:"max_completion_tokens,omitempty"`
	TopP                *float64        `koanf:"top_p" yaml:"top_p,omitempty"`
	FrequencyPenalty    *float64        `koanf:"frequency_penalty" yaml:"frequency_penalty,omitempty"`
	PresencePenalty     *float64        `koanf:"presence_penalty" yaml:"presence_penalty,omitempty"`
	Stream              bool            `koanf:"stream" yaml:"stream,omitempty"`
	ReasoningEffort     string          `koanf:"reasoning_effort" yaml:"reasoning_effort,omitempty"`
	Verbosity           string          `koanf:"verbosity" yaml:"verbosity,omitempty"`
	ResponseFormat      *ResponseFormat `koanf:"response_format" yaml:"response_format,omitempty"`
}

// CompletionRequest contains the parameters for a chat-style completion.
// Unset fields fall back to the agent config, then to hard defaults.
type CompletionRequest struct {
	Messages            []Message
	Model               string
	Temperature         *float64
	MaxCompletionTokens int
	TopP                *float64
	FrequencyPenalty    *float64
	PresencePenalty     *float64
	ReasoningEffort     string
	Verbosity           string
	ResponseFormat      *ResponseFormat
}

// CompletionResponse contains the result of a completion.
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
	InputTokens  int
	OutputTokens int
}

// Tool describes a callable tool offered to the model during a
// tool-augmented completion. Run executes the tool with the model-supplied
// JSON arguments and returns a plain-text result fed back to the model.
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage
	Run         func(ctx context.Context, args json.RawMessage) (string, error)
}

// Tool-choice policies for ToolRequest.
const (
	ToolChoiceAuto     = "auto"
	ToolChoiceRequired = "required"
	ToolChoiceNone     = "none"
)

// ToolRequest contains the parameters for a tool-augmented completion.
// Structured-output constraints are not available in this mode; callers
// recover JSON from the plain-text answer on a best-effort basis.
type ToolRequest struct {
	Prompt          string
	Tools           []Tool
	ToolChoice      string
	ReasoningEffort string
}

// Stream is a finite, non-restartable sequence of content fragments from a
// streaming completion. Recv returns io.EOF when the stream is exhausted.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Gateway is the uniform interface to the LLM provider. It normalizes
// chat-style completions (optionally streamed, optionally schema
// constrained) and tool-augmented generation.
type Gateway interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	CompleteStream(ctx context.Context, req CompletionRequest) (Stream, error)
	ToolComplete(ctx context.Context, req ToolRequest) (*CompletionResponse, error)
}
