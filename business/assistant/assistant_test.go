package assistant

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

type completerFunc func(ctx context.Context, query, systemInstruction string) (string, error)

func (f completerFunc) Complete(ctx context.Context, query, systemInstruction string) (string, error) {
	return f(ctx, query, systemInstruction)
}

func TestAssistant_Ask(t *testing.T) {
	var gotQuery, gotInstruction string
	a := New(completerFunc(func(ctx context.Context, query, systemInstruction string) (string, error) {
		gotQuery, gotInstruction = query, systemInstruction
		return "Visit Belem early in the morning.", nil
	}), "You are a travel assistant.\n")

	res, err := a.Ask(context.Background(), "What to see in Lisbon?")
	assert.NoError(t, err)
	assert.Equal(t, "Visit Belem early in the morning.", res)
	assert.Equal(t, "What to see in Lisbon?", gotQuery)
	assert.Equal(t, "You are a travel assistant.\n", gotInstruction)
}

func TestAssistant_Ask_EmptyQuery(t *testing.T) {
	called := false
	a := New(completerFunc(func(ctx context.Context, query, systemInstruction string) (string, error) {
		called = true
		return "", nil
	}), "")

	for _, q := range []string{"", "   "} {
		_, err := a.Ask(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}

	assert.False(t, called)
}

func TestAssistant_Ask_Error(t *testing.T) {
	boom := errors.New("boom")
	a := New(completerFunc(func(ctx context.Context, query, systemInstruction string) (string, error) {
		return "", boom
	}), "")

	_, err := a.Ask(context.Background(), "hello")
	assert.ErrorIs(t, err, boom)
}
