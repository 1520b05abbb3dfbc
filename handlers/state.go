package handlers

import (
	"net/http"

	"carelink/middleware"
	"carelink/models"
	"carelink/services/store"

	"github.com/gin-gonic/gin"
)

// view is the UI-facing part of the state. Collections are served by their
// own endpoints.
type view struct {
	Route              models.Frame     `json:"route"`
	History            store.History    `json:"history"`
	Session            *models.Session  `json:"session"`
	Theme              models.Theme     `json:"theme"`
	Query              string           `json:"query"`
	Filters            models.FilterSet `json:"filters"`
	SelectedProviderID string           `json:"selectedProviderId,omitempty"`
	DashboardTab       string           `json:"dashboardTab,omitempty"`
}

// viewOf shapes s for the caller. The session and its cached profile are
// only shown to the bearer of that session.
func viewOf(c *gin.Context, s store.State) view {
	history := s.History
	if history == nil {
		history = store.History{}
	}
	var session *models.Session
	if caller, ok := middleware.SessionFrom(c); ok && s.Session != nil &&
		caller.ID == s.Session.ID && caller.Role == s.Session.Role {
		cp := s.Session.Clone()
		session = &cp
	}
	return view{
		Route:              s.Route,
		History:            history,
		Session:            session,
		Theme:              s.Theme,
		Query:              s.Query,
		Filters:            s.Filters,
		SelectedProviderID: s.SelectedProviderID,
		DashboardTab:       s.DashboardTab,
	}
}

type filtersRequest struct {
	Query   string           `json:"query"`
	Filters models.FilterSet `json:"filters"`
}

type selectRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
}

type tabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

type themeRequest struct {
	Theme models.Theme `json:"theme" binding:"required"`
}

// StateHandler returns the current view state.
func (hb *HandlerBundle) StateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, viewOf(c, hb.Directory.State()))
}

// NavigateHandler moves to a new frame.
func (hb *HandlerBundle) NavigateHandler(c *gin.Context) {
	var frame models.Frame
	if err := c.ShouldBindJSON(&frame); err != nil {
		bindError(c, err)
		return
	}
	state, err := hb.Directory.Navigate(c.Request.Context(), frame)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(c, state))
}

// BackHandler returns to the previous frame.
func (hb *HandlerBundle) BackHandler(c *gin.Context) {
	c.JSON(http.StatusOK, viewOf(c, hb.Directory.Back(c.Request.Context())))
}

// SetFiltersHandler stores the active query and filters.
func (hb *HandlerBundle) SetFiltersHandler(c *gin.Context) {
	var req filtersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	state, err := hb.Directory.SetFilters(c.Request.Context(), req.Query, req.Filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(c, state))
}

// SelectProviderHandler records the provider on screen.
func (hb *HandlerBundle) SelectProviderHandler(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	state, err := hb.Directory.SelectProvider(c.Request.Context(), req.ProviderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(c, state))
}

// SetDashboardTabHandler records the active dashboard tab.
func (hb *HandlerBundle) SetDashboardTabHandler(c *gin.Context) {
	var req tabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	state, err := hb.Directory.SetDashboardTab(c.Request.Context(), req.Tab)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(c, state))
}

// SetThemeHandler records the theme preference.
func (hb *HandlerBundle) SetThemeHandler(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	state, err := hb.Directory.SetTheme(c.Request.Context(), req.Theme)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(c, state))
}
