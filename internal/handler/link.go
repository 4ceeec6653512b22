package handler

import (
	"DocVault/config"
	"DocVault/internal/dto"
	"DocVault/internal/service"
	"DocVault/internal/storage"
	"DocVault/utils"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LinkHandler serves owner-side link management.
type LinkHandler struct {
	links *service.LinkService
	store storage.Store
}

// NewLinkHandler creates a link handler.
func NewLinkHandler(links *service.LinkService, store storage.Store) *LinkHandler {
	return &LinkHandler{links: links, store: store}
}

// CreateLink uploads the document (multipart field "file") and creates a
// shareable link. Alternatively an existing backing URL may be supplied
// in the "url" form field.
func (h *LinkHandler) CreateLink(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)

	in := service.CreateLinkInput{
		Password: c.PostForm("password"),
		URL:      c.PostForm("url"),
		FileName: c.PostForm("file_name"),
	}

	if raw := c.PostForm("expires_at"); raw != "" {
		expiresAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "invalid expires_at")
			return
		}
		in.ExpiresAt = &expiresAt
	}

	fileHeader, err := c.FormFile("file")
	if err == nil {
		objectName := utils.NewToken()
		file, err := fileHeader.Open()
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "open upload failed")
			return
		}
		defer file.Close()

		err = h.store.PutObject(
			c.Request.Context(),
			config.AppConfig.BucketName,
			objectName,
			file,
			fileHeader.Size,
			storage.PutOptions{ContentType: fileHeader.Header.Get("Content-Type")},
		)
		if err != nil {
			utils.Fail(c, http.StatusInternalServerError, "store document failed: "+err.Error())
			return
		}

		signed, err := h.store.PresignedGetObject(
			c.Request.Context(),
			config.AppConfig.BucketName,
			objectName,
			config.AppConfig.SignedURLExpiry,
		)
		if err != nil {
			utils.Fail(c, http.StatusInternalServerError, "sign url failed: "+err.Error())
			return
		}

		in.ObjectName = objectName
		in.URL = signed
		if in.FileName == "" {
			in.FileName = fileHeader.Filename
		}
	}

	link, err := h.links.CreateLink(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, service.ErrNothingToShare) {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.Success(c, dto.NewLinkResponse(link))
}

// UpdateLink applies a partial update to an owned link.
func (h *LinkHandler) UpdateLink(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)

	var req dto.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid params")
		return
	}

	in := service.UpdateLinkInput{FileName: req.FileName}

	switch req.PasswordAction {
	case "", "keep":
		in.Password = service.PasswordKeep
	case "clear":
		in.Password = service.PasswordClear
	case "set":
		if req.Password == "" {
			utils.Fail(c, http.StatusBadRequest, "password required for password_action=set")
			return
		}
		in.Password = service.PasswordSet
		in.NewPassword = req.Password
	default:
		utils.Fail(c, http.StatusBadRequest, "invalid password_action")
		return
	}

	if req.ExpiresEnabled != nil {
		if !*req.ExpiresEnabled {
			in.ClearExpiry = true
		} else {
			// Enabling expiry requires an explicit date.
			if req.ExpiresAt == nil {
				utils.Fail(c, http.StatusBadRequest, "expires_at required when enabling expiration")
				return
			}
			in.ExpiresAt = req.ExpiresAt
		}
	} else if req.ExpiresAt != nil {
		in.ExpiresAt = req.ExpiresAt
	}

	link, err := h.links.UpdateLink(c.Request.Context(), userID, req.LinkID, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			utils.Fail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotOwner):
			utils.Fail(c, http.StatusForbidden, err.Error())
		default:
			utils.Fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.Success(c, dto.NewLinkResponse(link))
}

// DeleteLink removes an owned link and its backing object.
func (h *LinkHandler) DeleteLink(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)

	var req dto.DeleteLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid params")
		return
	}

	link, err := h.links.DeleteLink(c.Request.Context(), userID, req.LinkID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			utils.Fail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotOwner):
			utils.Fail(c, http.StatusForbidden, err.Error())
		default:
			utils.Fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	// The row is gone; object cleanup is best-effort.
	if link.ObjectName != "" {
		if err := h.store.RemoveObject(c.Request.Context(), config.AppConfig.BucketName, link.ObjectName); err != nil {
			log.Printf("remove object %s failed: %v", link.ObjectName, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"msg": "link deleted"})
}
