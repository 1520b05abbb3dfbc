package handlers

import (
	"net/http"
	"strconv"

	"carelink/models"

	"github.com/gin-gonic/gin"
)

type features struct {
	Analytics        bool `json:"analytics"`
	DirectBooking    bool `json:"directBooking"`
	ReviewResponses  bool `json:"reviewResponses"`
	DescriptionLimit int  `json:"descriptionLimit"`
}

func featuresOf(p models.Provider) features {
	return features{
		Analytics:        models.CanViewAnalytics(p),
		DirectBooking:    models.CanDirectBook(p),
		ReviewResponses:  models.CanRespondToReviews(p),
		DescriptionLimit: models.DescriptionLimit(p),
	}
}

type providerDetail struct {
	models.Provider
	Reviews  []models.Review `json:"reviews"`
	Features features        `json:"features"`
}

// SearchProvidersHandler ranks providers for ?q= and the filter parameters.
func (hb *HandlerBundle) SearchProvidersHandler(c *gin.Context) {
	var filters models.FilterSet
	if err := c.ShouldBindQuery(&filters); err != nil {
		bindError(c, err)
		return
	}
	results := hb.Search.Search(c.Request.Context(), c.Query("q"), filters)
	c.JSON(http.StatusOK, gin.H{"providers": results, "count": len(results)})
}

// FeaturedProvidersHandler returns the top ranked providers with no filters.
func (hb *HandlerBundle) FeaturedProvidersHandler(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "3"))
	if err != nil || limit < 1 {
		bindError(c, strconv.ErrSyntax)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": hb.Search.Featured(limit)})
}

// GetProviderHandler returns a provider with its reviews and tier features.
func (hb *HandlerBundle) GetProviderHandler(c *gin.Context) {
	id := c.Param("id")
	state := hb.Directory.State()
	p, ok := state.Provider(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		return
	}
	reviews := state.ReviewsFor(id)
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, providerDetail{Provider: p, Reviews: reviews, Features: featuresOf(p)})
}

// RecordViewHandler counts one listing view.
func (hb *HandlerBundle) RecordViewHandler(c *gin.Context) {
	state, err := hb.Directory.RecordView(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	p, _ := state.Provider(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"views": p.Stats.Views})
}

// UpdateProviderHandler merges a patch into the provider listing.
func (hb *HandlerBundle) UpdateProviderHandler(c *gin.Context) {
	var patch models.ProviderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	id := c.Param("id")
	state, err := hb.Directory.UpdateProvider(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	p, _ := state.Provider(id)
	c.JSON(http.StatusOK, p)
}

// AnalyticsHandler returns the provider's analytics dashboard data.
func (hb *HandlerBundle) AnalyticsHandler(c *gin.Context) {
	a, err := hb.Directory.Analytics(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// CategoriesHandler lists the category catalogue.
func (hb *HandlerBundle) CategoriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories})
}
