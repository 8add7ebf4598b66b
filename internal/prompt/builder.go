// Package prompt builds ordered conversation sequences and renders prompt
// templates with named placeholders.
package prompt

import (
	"strings"

	"github.com/scoutlens/scoutlens/internal/llm"
)

// Builder accumulates role-tagged conversation messages for submission to
// the gateway. The sequence is rebuilt fresh on every call and never
// persisted.
type Builder struct {
	messages []llm.Message
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// System appends a system message.
func (b *Builder) System(content string) *Builder {
	return b.add(llm.RoleSystem, content)
}

// User appends a user message.
func (b *Builder) User(content string) *Builder {
	return b.add(llm.RoleUser, content)
}

// Assistant appends an assistant message.
func (b *Builder) Assistant(content string) *Builder {
	return b.add(llm.RoleAssistant, content)
}

// Add appends a message with an arbitrary role. Unknown roles are stored
// as-is; the gateway surfaces any provider rejection.
func (b *Builder) Add(role llm.Role, content string) *Builder {
	return b.add(role, content)
}

func (b *Builder) add(role llm.Role, content string) *Builder {
	b.messages = append(b.messages, llm.Message{Role: role, Content: content})
	return b
}

// Len returns the number of accumulated messages.
func (b *Builder) Len() int { return len(b.messages) }

// Build returns a copy of the accumulated message sequence.
func (b *Builder) Build() []llm.Message {
	out := make([]llm.Message, len(b.messages))
	copy(out, b.messages)
	return out
}

// Reset empties the builder.
func (b *Builder) Reset() *Builder {
	b.messages = nil
	return b
}

// Render substitutes {name} placeholders in a template with the given
// values. Placeholders without a value are left untouched.
func Render(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(vars))
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
