package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appordering "github.com/orderhub/backend/internal/application/ordering"
)

// ContactHandler serves the buyer's delivery contacts
type ContactHandler struct {
	BaseHandler
	contacts *appordering.ContactService
}

func NewContactHandler(contacts *appordering.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// List returns the buyer's active contacts
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context(), getUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contacts)
}

// Create adds a new delivery contact
func (h *ContactHandler) Create(c *gin.Context) {
	var input appordering.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "city, street and phone are required")
		return
	}

	contact, err := h.contacts.Create(c.Request.Context(), getUserID(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}

// Update replaces a contact's address fields
func (h *ContactHandler) Update(c *gin.Context) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact id")
		return
	}

	var input appordering.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "city, street and phone are required")
		return
	}

	contact, err := h.contacts.Update(c.Request.Context(), getUserID(c), contactID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// Delete soft-deletes a contact
func (h *ContactHandler) Delete(c *gin.Context) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact id")
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), getUserID(c), contactID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
