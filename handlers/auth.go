package handlers

import (
	"net/http"

	"carelink/services/directory"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type participantSignup struct {
	directory.ParticipantRegistration
	Password string `json:"password" binding:"required"`
}

type providerSignup struct {
	directory.ProviderRegistration
	Password string `json:"password" binding:"required"`
}

// LoginHandler verifies credentials and opens the session.
func (hb *HandlerBundle) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := hb.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RegisterParticipantHandler creates a participant account.
func (hb *HandlerBundle) RegisterParticipantHandler(c *gin.Context) {
	var req participantSignup
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := hb.Auth.RegisterParticipant(c.Request.Context(), req.ParticipantRegistration, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// RegisterProviderHandler creates a free-tier provider account.
func (hb *HandlerBundle) RegisterProviderHandler(c *gin.Context) {
	var req providerSignup
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := hb.Auth.RegisterProvider(c.Request.Context(), req.ProviderRegistration, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// LogoutHandler closes the session.
func (hb *HandlerBundle) LogoutHandler(c *gin.Context) {
	state := hb.Auth.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"route": state.Route})
}

// SessionHandler returns the open session with its cached profile.
func (hb *HandlerBundle) SessionHandler(c *gin.Context) {
	state := hb.Directory.State()
	if state.Session == nil {
		respondError(c, directory.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, state.Session)
}
