package assistant

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyQuery = errors.New("query is required")

type completer interface {
	Complete(ctx context.Context, query, systemInstruction string) (string, error)
}

// Assistant answers free-text travel questions under a fixed system instruction.
type Assistant struct {
	llm               completer
	systemInstruction string
}

func New(llm completer, systemInstruction string) *Assistant {
	return &Assistant{
		llm:               llm,
		systemInstruction: systemInstruction,
	}
}

func (a *Assistant) Ask(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	return a.llm.Complete(ctx, query, a.systemInstruction)
}
