package handler

import (
	"github.com/gin-gonic/gin"

	walletapp "github.com/storefront/backend/internal/application/wallet"
)

// WalletHandler handles the signed-in user's wallet
type WalletHandler struct {
	BaseHandler
	walletService *walletapp.Service
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService *walletapp.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetBalance returns the wallet balance
//
// @Summary      Get wallet balance
// @Tags         wallet
// @Produce      json
// @Success      200 {object} dto.Response{data=walletapp.BalanceResponse}
// @Router       /wallet [get]
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	resp, err := h.walletService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListTransactions returns the wallet ledger, newest first
//
// @Summary      List wallet transactions
// @Tags         wallet
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response
// @Router       /wallet/transactions [get]
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}

	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid list parameters")
		return
	}

	transactions, total, err := h.walletService.ListTransactions(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, transactions, total, filter.Page, filter.PageSize)
}

// Credit adds money to a user's wallet from the back office
//
// @Summary      Credit a wallet
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        userId path string true "User ID" format(uuid)
// @Param        request body walletapp.CreditRequest true "Amount and reason"
// @Success      200 {object} dto.Response{data=walletapp.BalanceResponse}
// @Router       /admin/wallets/{userId}/credit [post]
func (h *WalletHandler) Credit(c *gin.Context) {
	userID, err := parseID(c, "userId")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req walletapp.CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.walletService.Credit(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
