package handlers

import (
	"net/http"

	"carelink/services/directory"

	"github.com/gin-gonic/gin"
)

// SubmitReviewHandler records a review of a provider.
func (hb *HandlerBundle) SubmitReviewHandler(c *gin.Context) {
	var in directory.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	review, err := hb.Directory.SubmitReview(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// RespondReviewHandler sets the provider's reply to a review.
func (hb *HandlerBundle) RespondReviewHandler(c *gin.Context) {
	var in directory.RespondInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	id := c.Param("id")
	state, err := hb.Directory.RespondReview(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	review, _ := state.Review(id)
	c.JSON(http.StatusOK, review)
}
