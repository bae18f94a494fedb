package handler

import (
    "context"
    "net/http"
    "net/mail"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/wildriver/resort-booking/internal/model"
    "github.com/wildriver/resort-booking/internal/repository"
)

// ContactHandler serves the public contact form and the admin inbox built
// on top of it.
type ContactHandler struct {
	Contacts *repository.ContactRepo
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(contacts *repository.ContactRepo) *ContactHandler {
	if contacts == nil {
		panic("nil repository passed to NewContactHandler")
	}
	return &ContactHandler{Contacts: contacts}
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit handles POST /v1/contacts.  Open to anonymous visitors.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and message are required"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}

	contact := model.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
		Status:  model.ContactNew,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Contacts.Create(ctx, &contact); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save message"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Thank you for contacting us. We will get back to you soon.",
		"contact": contact,
	})
}

// List handles GET /v1/admin/contacts.
func (h *ContactHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	contacts, err := h.Contacts.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, contacts)
}

// Get handles GET /v1/admin/contacts/:id.
func (h *ContactHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contact id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	contact, err := h.Contacts.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrContactNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, contact)
}

// UpdateStatus handles PATCH /v1/admin/contacts/:id/status.
func (h *ContactHandler) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contact id"})
	}

	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if !model.ValidContactStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	contact, err := h.Contacts.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if err == repository.ErrContactNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update contact"})
	}
	return c.JSON(http.StatusOK, contact)
}

// Delete handles DELETE /v1/admin/contacts/:id.
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contact id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Contacts.Delete(ctx, id); err != nil {
		if err == repository.ErrContactNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete contact"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Contact deleted successfully"})
}
