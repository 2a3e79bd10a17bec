package handler

import (
	"github.com/gin-gonic/gin"

	promotionapp "github.com/storefront/backend/internal/application/promotion"
)

// CouponHandler handles back office coupon management
type CouponHandler struct {
	BaseHandler
	couponService *promotionapp.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService *promotionapp.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// Create creates a coupon
//
// @Summary      Create coupon
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body promotionapp.CreateCouponRequest true "Coupon to create"
// @Success      201 {object} dto.Response{data=promotionapp.CouponResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req promotionapp.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.couponService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns a coupon
//
// @Summary      Get coupon by ID
// @Tags         admin
// @Produce      json
// @Param        id path string true "Coupon ID" format(uuid)
// @Success      200 {object} dto.Response{data=promotionapp.CouponResponse}
// @Router       /admin/coupons/{id} [get]
func (h *CouponHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	resp, err := h.couponService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns coupons with pagination
//
// @Summary      List coupons
// @Tags         admin
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response
// @Router       /admin/coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid list parameters")
		return
	}

	coupons, total, err := h.couponService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, coupons, total, filter.Page, filter.PageSize)
}

// Deactivate turns a coupon off without deleting its redemption history
//
// @Summary      Deactivate coupon
// @Tags         admin
// @Produce      json
// @Param        id path string true "Coupon ID" format(uuid)
// @Success      204
// @Router       /admin/coupons/{id} [delete]
func (h *CouponHandler) Deactivate(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	if err := h.couponService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
