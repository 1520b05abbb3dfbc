package handlers

import (
	"net/http"

	"carelink/services/directory"

	"github.com/gin-gonic/gin"
)

// ListEnquiriesHandler lists the threads the session takes part in.
func (hb *HandlerBundle) ListEnquiriesHandler(c *gin.Context) {
	enquiries, err := hb.Directory.EnquiriesForSession()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enquiries": enquiries})
}

// SendEnquiryHandler opens a thread with a provider.
func (hb *HandlerBundle) SendEnquiryHandler(c *gin.Context) {
	var in directory.SendEnquiryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	enq, err := hb.Directory.SendEnquiry(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, enq)
}

// ReplyEnquiryHandler appends a message to an open thread.
func (hb *HandlerBundle) ReplyEnquiryHandler(c *gin.Context) {
	var in directory.ReplyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	msg, err := hb.Directory.ReplyEnquiry(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// CloseEnquiryHandler closes a thread.
func (hb *HandlerBundle) CloseEnquiryHandler(c *gin.Context) {
	id := c.Param("id")
	state, err := hb.Directory.CloseEnquiry(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	enq, _ := state.Enquiry(id)
	c.JSON(http.StatusOK, enq)
}
