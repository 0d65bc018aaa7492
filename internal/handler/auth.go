package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeapi/internal/apperrors"
	"storeapi/internal/service"
)

type AuthHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Refresh(c *gin.Context)
}

type authHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) AuthHandler {
	return &authHandler{authService: authService, logger: logger}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin regular"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *authHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("ERR: auth - register", zap.Error(err))
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	_, err := h.authService.Register(service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.logger.Error("ERR: auth - register", zap.Error(err))
		respondError(c, apperrors.StatusCode(err), apperrors.MessageOf(err))
		return
	}

	respondOK(c, http.StatusCreated, "Register user success", nil)
}

func (h *authHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("ERR: auth - login", zap.Error(err))
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	pair, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.logger.Error("ERR: auth - login", zap.Error(err))
		respondError(c, apperrors.StatusCode(err), apperrors.MessageOf(err))
		return
	}

	respondOK(c, http.StatusOK, "Login success", gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *authHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("ERR: auth - refresh", zap.Error(err))
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	accessToken, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		h.logger.Error("ERR: auth - refresh", zap.Error(err))
		// An unusable refresh token is a 401 here, not the 422 the login
		// endpoint answers with for bad credentials.
		code := apperrors.StatusCode(err)
		if apperrors.KindOf(err) == apperrors.KindAuthentication {
			code = http.StatusUnauthorized
		}
		respondError(c, code, apperrors.MessageOf(err))
		return
	}

	respondOK(c, http.StatusOK, "Refresh token success", gin.H{
		"accessToken": accessToken,
	})
}
