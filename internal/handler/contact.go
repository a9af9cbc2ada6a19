package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flintic/eats-reservation/internal/model"
)

// ContactStore persists public contact-form messages.  Implemented by
// repository.ContactRepo.
type ContactStore interface {
	Create(ctx context.Context, m *model.ContactMessage) error
}

// ContactHandler implements the public contact form endpoint.
type ContactHandler struct {
	Store ContactStore
}

func NewContactHandler(store ContactStore) *ContactHandler {
	if store == nil {
		panic("nil store passed to NewContactHandler")
	}
	return &ContactHandler{Store: store}
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit handles POST /v1/contact.  All three fields are required; the
// message is stored and never read back by the application.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields"})
	}

	msg := model.ContactMessage{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := h.Store.Create(c.Request().Context(), &msg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save message"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
