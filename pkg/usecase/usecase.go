package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/matchday-bot/matchday/pkg/domain/model"
)

//go:embed prompt/chat_system.md
var chatSystemPromptTmpl string

var chatSystemPrompt = template.Must(template.New("chat_system").Parse(chatSystemPromptTmpl))

// DefaultPersona is the assistant name used unless a profile overrides it
const DefaultPersona = "Leo"

// BuildPreamble renders the system preamble for the given persona name
func BuildPreamble(persona string) (string, error) {
	if persona == "" {
		persona = DefaultPersona
	}

	var buf bytes.Buffer
	if err := chatSystemPrompt.Execute(&buf, map[string]string{"Persona": persona}); err != nil {
		return "", goerr.Wrap(err, "failed to render system preamble", goerr.V("persona", persona))
	}
	return buf.String(), nil
}

// ContextRetriever supplies the retrieved fact block for one query
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string, k int) string
}

// ToolInvoker executes a declared tool call and renders the outcome
type ToolInvoker interface {
	Invoke(ctx context.Context, call *model.ToolCallIntent) string
}
