package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Hard defaults applied when neither the request nor the agent config
// specifies a value.
const (
	DefaultModel       = "gpt-5-mini"
	DefaultTemperature = 1.0
)

// maxToolRounds bounds the tool-calling loop in ToolComplete.
const maxToolRounds = 4

// Client implements Gateway against the OpenAI Chat Completions API.
type Client struct {
	api *openai.Client
	cfg AgentConfig
}

// NewClient creates a new OpenAI gateway client with the given per-agent
// configuration defaults.
func NewClient(apiKey string, cfg AgentConfig) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is not set")
	}
	return &Client{
		api: openai.NewClient(apiKey),
		cfg: cfg,
	}, nil
}

// Config returns the agent configuration the client was created with.
func (c *Client) Config() AgentConfig { return c.cfg }

// Complete sends a non-streaming chat completion.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	apiReq := c.resolve(req)

	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return nil, err
	}
	return chatResponse(resp), nil
}

// CompleteStream sends a streaming chat completion and returns a Stream of
// content fragments. The stream is finite and not restartable; a fresh call
// must be issued to regenerate.
func (c *Client) CompleteStream(ctx context.Context, req CompletionRequest) (Stream, error) {
	apiReq := c.resolve(req)
	apiReq.Stream = true

	stream, err := c.api.CreateChatCompletionStream(ctx, apiReq)
	if err != nil {
		return nil, err
	}
	return &chatStream{stream: stream}, nil
}

// ToolComplete runs a tool-augmented completion: the prompt is sent together
// with the tool descriptors, model-issued tool calls are executed locally,
// and their results are fed back until the model produces a final plain-text
// answer.
func (c *Client) ToolComplete(ctx context.Context, req ToolRequest) (*CompletionResponse, error) {
	apiReq := c.resolve(CompletionRequest{
		Messages:        []Message{{Role: RoleUser, Content: req.Prompt}},
		ReasoningEffort: req.ReasoningEffort,
	})

	byName := make(map[string]Tool, len(req.Tools))
	for _, t := range req.Tools {
		byName[t.Name] = t
		apiReq.Tools = append(apiReq.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	if req.ToolChoice != "" {
		apiReq.ToolChoice = req.ToolChoice
	}

	for round := 0; ; round++ {
		resp, err := c.api.CreateChatCompletion(ctx, apiReq)
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return chatResponse(resp), nil
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 || round >= maxToolRounds {
			return chatResponse(resp), nil
		}

		apiReq.Messages = append(apiReq.Messages, msg)
		for _, call := range msg.ToolCalls {
			result := c.runTool(ctx, byName, call)
			apiReq.Messages = append(apiReq.Messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
		// A forced tool call has been satisfied; let the model answer.
		apiReq.ToolChoice = ToolChoiceAuto
	}
}

// runTool executes a single model-issued tool call. Failures are rendered as
// text for the model rather than aborting the completion.
func (c *Client) runTool(ctx context.Context, byName map[string]Tool, call openai.ToolCall) string {
	t, ok := byName[call.Function.Name]
	if !ok || t.Run == nil {
		return fmt.Sprintf("error: unknown tool %q", call.Function.Name)
	}
	result, err := t.Run(ctx, json.RawMessage(call.Function.Arguments))
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return result
}

// resolve builds the outbound API request, applying the configuration
// precedence: request field, then agent config, then hard default.
// Parameters resolving to "unset" are left at their zero value so the SDK
// omits them from the wire request.
func (c *Client) resolve(req CompletionRequest) openai.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	if model == "" {
		model = DefaultModel
	}

	apiReq := openai.ChatCompletionRequest{
		Model:    model,
		Messages: toAPIMessages(req.Messages),
	}

	if !modelRejectsTemperature(model) {
		apiReq.Temperature = float32(resolveFloat(req.Temperature, c.cfg.Temperature, DefaultTemperature))
	}
	if v := resolveFloat(req.TopP, c.cfg.TopP, 0); v != 0 {
		apiReq.TopP = float32(v)
	}
	if v := resolveFloat(req.FrequencyPenalty, c.cfg.FrequencyPenalty, 0); v != 0 {
		apiReq.FrequencyPenalty = float32(v)
	}
	if v := resolveFloat(req.PresencePenalty, c.cfg.PresencePenalty, 0); v != 0 {
		apiReq.PresencePenalty = float32(v)
	}

	maxTokens := req.MaxCompletionTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxCompletionTokens
	}
	verbosity := req.Verbosity
	if verbosity == "" {
		verbosity = c.cfg.Verbosity
	}
	if maxTokens == 0 {
		// The Chat Completions SDK has no verbosity parameter; apply the
		// hint as an output-length cap instead.
		switch verbosity {
		case "low":
			maxTokens = 1024
		case "medium":
			maxTokens = 4096
		}
	}
	apiReq.MaxCompletionTokens = maxTokens

	effort := req.ReasoningEffort
	if effort == "" {
		effort = c.cfg.ReasoningEffort
	}
	apiReq.ReasoningEffort = effort

	rf := req.ResponseFormat
	if rf == nil {
		rf = c.cfg.ResponseFormat
	}
	apiReq.ResponseFormat = toAPIResponseFormat(rf)

	return apiReq
}

// modelRejectsTemperature reports whether the model is a lightweight variant
// that rejects a temperature override. Detection is by the size-variant
// suffix in the model identifier rather than an exception list, so new
// variants inherit the rule.
func modelRejectsTemperature(model string) bool {
	m := strings.ToLower(model)
	return strings.Contains(m, "mini") || strings.Contains(m, "nano")
}

// resolveFloat applies the unset-fallback chain for optional sampling
// parameters.
func resolveFloat(reqVal, cfgVal *float64, def float64) float64 {
	if reqVal != nil {
		return *reqVal
	}
	if cfgVal != nil {
		return *cfgVal
	}
	return def
}

func toAPIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return out
}

func toAPIResponseFormat(rf *ResponseFormat) *openai.ChatCompletionResponseFormat {
	if rf == nil || rf.Type == "" || rf.Type == FormatText {
		return nil
	}
	switch rf.Type {
	case FormatJSONObject:
		return &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	case FormatJSONSchema:
		return &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   rf.SchemaName,
				Schema: rf.Schema,
				Strict: rf.Strict,
			},
		}
	default:
		return nil
	}
}

func chatResponse(resp openai.ChatCompletionResponse) *CompletionResponse {
	out := &CompletionResponse{
		Model:        resp.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}
	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
		out.FinishReason = string(resp.Choices[0].FinishReason)
	}
	return out
}

// chatStream adapts the SDK stream to the Stream interface, skipping frames
// that carry no content delta.
type chatStream struct {
	stream *openai.ChatCompletionStream
}

func (s *chatStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			if err == io.EOF {
				return "", io.EOF
			}
			return "", err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			return delta, nil
		}
	}
}

func (s *chatStream) Close() error {
	return s.stream.Close()
}
