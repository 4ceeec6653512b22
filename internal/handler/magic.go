package handler

import (
	"DocVault/config"
	"DocVault/internal/dto"
	"DocVault/internal/service"
	"DocVault/utils"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// MagicHandler serves the one-time view-link email flow.
type MagicHandler struct {
	magic *service.MagicLinkService
}

// NewMagicHandler creates a magic link handler.
func NewMagicHandler(magic *service.MagicLinkService) *MagicHandler {
	return &MagicHandler{magic: magic}
}

// RequestAccess issues a single-use view token and mails it.
func (h *MagicHandler) RequestAccess(c *gin.Context) {
	var req dto.RequestAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid params")
		return
	}

	_, err := h.magic.IssueViewToken(c.Request.Context(), req.Email, req.LinkID)
	if err != nil {
		var deliveryErr *service.DeliveryError
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			utils.Fail(c, http.StatusNotFound, err.Error())
		case errors.As(err, &deliveryErr):
			// The token is issued; only delivery failed.
			utils.Fail(c, http.StatusBadGateway, deliveryErr.Error())
		default:
			utils.Fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "view link sent"})
}

// Redeem consumes a magic token and redirects to the link's view page
// carrying a short-lived viewer JWT for the bound email.
func (h *MagicHandler) Redeem(c *gin.Context) {
	email, redirectTo, err := h.magic.RedeemViewToken(c.Request.Context(), c.Query("token"))
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			utils.Fail(c, http.StatusForbidden, err.Error())
			return
		}
		utils.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	linkID := strings.TrimPrefix(redirectTo, "/links/view/")
	auth, err := utils.GenerateViewerToken(email, linkID, config.AppConfig.ViewerTokenTTL)
	if err != nil {
		log.Printf("generate viewer token failed: %v", err)
		c.Redirect(http.StatusFound, redirectTo)
		return
	}

	c.Redirect(http.StatusFound, redirectTo+"?auth="+url.QueryEscape(auth))
}
