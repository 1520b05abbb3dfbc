package handlers

import (
	"net/http"

	"carelink/models"
	"carelink/services/directory"

	"github.com/gin-gonic/gin"
)

// UpdateParticipantHandler merges a patch into a participant profile.
func (hb *HandlerBundle) UpdateParticipantHandler(c *gin.Context) {
	var patch models.ParticipantPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	id := c.Param("id")
	state, err := hb.Directory.UpdateParticipant(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	p, _ := state.Participant(id)
	c.JSON(http.StatusOK, p)
}

// ToggleFavouriteHandler adds or removes a provider from the favourites.
func (hb *HandlerBundle) ToggleFavouriteHandler(c *gin.Context) {
	providerID := c.Param("providerId")
	state, err := hb.Directory.ToggleFavourite(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, err)
		return
	}
	p, _ := state.SessionParticipant()
	c.JSON(http.StatusOK, gin.H{
		"favourites": p.Favourites,
		"favourite":  p.IsFavourite(providerID),
	})
}

// FavouritesHandler lists the session participant's favourite providers.
func (hb *HandlerBundle) FavouritesHandler(c *gin.Context) {
	state := hb.Directory.State()
	p, ok := state.SessionParticipant()
	if !ok {
		respondError(c, directory.ErrForbidden)
		return
	}
	out := make([]models.Provider, 0, len(p.Favourites))
	for _, id := range p.Favourites {
		if prov, ok := state.Provider(id); ok {
			out = append(out, prov)
		}
	}
	c.JSON(http.StatusOK, gin.H{"providers": out})
}
