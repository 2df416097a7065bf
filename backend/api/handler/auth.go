package handler

import (
	"errors"
	"net/http"

	"qrdrop/backend/service"

	"github.com/gin-gonic/gin"
)

// Signup accepts form or JSON credentials and redirects to the login page.
func (h *Handler) Signup(c *gin.Context) {
	var cred service.Credentials
	if err := c.ShouldBind(&cred); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	_, err := h.auth.Signup(c.Request.Context(), cred)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/")
	case errors.Is(err, service.ErrEmailInUse):
		c.String(http.StatusBadRequest, "Email already in use.")
	case errors.Is(err, service.ErrValidation):
		badRequest(c, "A valid email and a password of at most 72 bytes are required.", err)
	default:
		internalError(c, "Error creating user", err)
	}
}

// Login redirects to the upload page carrying the user id.
func (h *Handler) Login(c *gin.Context) {
	var cred service.Credentials
	if err := c.ShouldBind(&cred); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	user, err := h.auth.Login(c.Request.Context(), cred)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/upload.html?userId="+user.ID.Hex())
	case errors.Is(err, service.ErrInvalidCredentials):
		c.String(http.StatusBadRequest, "Invalid email or password")
	default:
		internalError(c, "Error during login", err)
	}
}
