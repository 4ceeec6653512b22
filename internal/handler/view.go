package handler

import (
	"DocVault/config"
	"DocVault/internal/dto"
	"DocVault/internal/service"
	"DocVault/internal/storage"
	"DocVault/model"
	"DocVault/utils"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ViewHandler serves public access attempts against links.
type ViewHandler struct {
	access *service.AccessService
	store  storage.Store
}

// NewViewHandler creates a view handler.
func NewViewHandler(access *service.AccessService, store storage.Store) *ViewHandler {
	return &ViewHandler{access: access, store: store}
}

// ViewLink validates one access attempt. On grant it responds with the
// document URL; every denial reason maps to its own status and message.
func (h *ViewHandler) ViewLink(c *gin.Context) {
	linkID := c.Param("linkID")

	// An empty body is a legitimate anonymous attempt; a garbled one is not.
	var req dto.ViewLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.Fail(c, http.StatusBadRequest, "invalid params")
		return
	}

	email := req.Email
	if req.Auth != "" {
		// A viewer JWT from magic-link redemption authenticates the email.
		if claims, err := utils.VerifyViewerToken(req.Auth); err == nil && claims.LinkID == linkID {
			email = claims.Email
		}
	}

	link, err := h.access.ValidateAccess(c.Request.Context(), linkID, service.AccessRequest{
		Email:     email,
		Password:  req.Password,
		VisitorIP: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referer:   c.Request.Referer(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			utils.Fail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrLinkExpired):
			utils.Fail(c, http.StatusGone, err.Error())
		case errors.Is(err, service.ErrPasswordRequired):
			utils.Fail(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrIncorrectPassword):
			utils.Fail(c, http.StatusForbidden, err.Error())
		default:
			utils.Fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file_name": link.FileName,
		"url":       h.grantURL(c, link),
	})
}

// grantURL prefers a fresh presigned URL over the stored one so a grant
// is never cut short by the creation-time signature expiring.
func (h *ViewHandler) grantURL(c *gin.Context, link *model.Link) string {
	if link.ObjectName == "" {
		return link.URL
	}
	safeName := utils.SanitizeHeaderFilename(link.FileName)
	signed, err := h.store.PresignedGetObjectWithResponse(
		c.Request.Context(),
		config.AppConfig.BucketName,
		link.ObjectName,
		config.AppConfig.SignedURLExpiry,
		map[string]string{
			"response-content-disposition": fmt.Sprintf(`attachment; filename="%s"`, safeName),
		},
	)
	if err != nil {
		return link.URL
	}
	return signed
}
