package web

import (
	"context"
	"errors"
	"github.com/explore-flights/flight-aggregator/business/assistant"
	"github.com/explore-flights/flight-aggregator/web/model"
	"github.com/labstack/echo/v4"
	"net/http"
)

type asker interface {
	Ask(ctx context.Context, query string) (string, error)
}

type AssistantHandler struct {
	assistant asker
}

func NewAssistantHandler(assistant asker) *AssistantHandler {
	return &AssistantHandler{assistant}
}

func (h *AssistantHandler) Ask(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}

	query, err := model.ParseAssistantRequest(body)
	if err != nil {
		return err
	}

	res, err := h.assistant.Ask(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyQuery) {
			return &model.ValidationError{Message: model.MessageQueryRequired}
		}

		return NewHTTPError(http.StatusInternalServerError, WithMessage("Failed to process query with AI assistant"), WithProviderCause(err))
	}

	return c.JSON(http.StatusOK, model.AssistantResponse{Response: res})
}
