package handler

import (
	"github.com/gin-gonic/gin"

	customerapp "github.com/storefront/backend/internal/application/customer"
)

// AddressHandler handles the signed-in user's address book
type AddressHandler struct {
	BaseHandler
	addressService *customerapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addressService *customerapp.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// Create saves a new address
//
// @Summary      Add address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        request body customerapp.SaveAddressRequest true "Address to save"
// @Success      201 {object} dto.Response{data=customerapp.AddressResponse}
// @Router       /addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	var req customerapp.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.addressService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns the user's saved addresses
//
// @Summary      List addresses
// @Tags         addresses
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}

// Delete removes an address from the book
//
// @Summary      Delete address
// @Tags         addresses
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Success      204
// @Router       /addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	addressID, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
