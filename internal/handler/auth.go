package handler

import (
	"DocVault/config"
	"DocVault/internal/dto"
	"DocVault/internal/service"
	"DocVault/model"
	"DocVault/utils"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/context"
)

// AuthHandler serves registration, activation and login.
type AuthHandler struct {
	users  *service.UserService
	tokens service.TokenStore
	mailer service.Mailer
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(users *service.UserService, tokens service.TokenStore, mailer service.Mailer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, mailer: mailer}
}

// Register starts user registration and sends activation mail.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	if req.FirstPassword != req.LastPassword {
		utils.Fail(c, http.StatusBadRequest, "passwords do not match")
		return
	}
	taken, err := h.users.IsEmailTaken(c.Request.Context(), req.Email)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "check email failed: "+err.Error())
		return
	}
	if taken {
		utils.Fail(c, http.StatusBadRequest, "email already exists")
		return
	}

	token := utils.NewToken()
	tmp := struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}{
		Email:    req.Email,
		Username: req.Username,
		Password: req.FirstPassword,
	}

	data, _ := json.Marshal(tmp)
	if err := h.tokens.Put(c.Request.Context(), "register:"+token, data, config.AppConfig.ActivationTTL); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "cache activation token failed: "+err.Error())
		return
	}

	link := buildBaseURL(c) + "/api/activate?token=" + url.QueryEscape(token)
	if err := h.mailer.Send(req.Email, "Account Activation", utils.ActivateMailHTML(link)); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "send activation email failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "activation email sent"})
}

func buildBaseURL(c *gin.Context) string {
	baseURL := strings.TrimSpace(config.AppConfig.AppBaseURL)
	if baseURL == "" {
		scheme := "http"
		if forwarded := strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")); forwarded != "" {
			scheme = forwarded
		} else if c.Request.TLS != nil {
			scheme = "https"
		}
		host := strings.TrimSpace(c.GetHeader("X-Forwarded-Host"))
		if host == "" {
			host = c.Request.Host
		}
		baseURL = scheme + "://" + host
	}
	return strings.TrimRight(baseURL, "/")
}

// Activate activates a user account. The activation token is single use.
func (h *AuthHandler) Activate(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.Fail(c, http.StatusBadRequest, "token missing")
		return
	}

	ctx := context.Background()
	val, ok, err := h.tokens.Consume(ctx, "register:"+token)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "activation failed: "+err.Error())
		return
	}
	if !ok {
		utils.Fail(c, http.StatusBadRequest, "link invalid or expired")
		return
	}

	var tmp struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(val, &tmp); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "decode failed")
		return
	}

	user := model.User{
		Email:    tmp.Email,
		UserName: tmp.Username,
		Password: tmp.Password,
		IsActive: true,
	}
	if err := h.users.CreateUser(ctx, &user); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "account activated"})
}

// Login authenticates a user and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	user, err := h.users.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "user not found")
		return
	}
	if err := h.users.CheckPassword(c.Request.Context(), req.Username, req.Password); err != nil {
		utils.Fail(c, http.StatusBadRequest, "password error")
		return
	}
	token, err := utils.GenerateToken(user.ID, user.UserName)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "generate token failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"token":   token,
	})
}
