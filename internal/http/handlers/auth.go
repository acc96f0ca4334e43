package handlers

import (
	"net/http"

	"hrms/internal/domain"
	"hrms/internal/http/middleware"
	"hrms/internal/http/response"
	"hrms/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Service *services.AuthService
}

// POST /auth/register
func (h AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Service.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusCreated, toAuthResp(res))
}

// POST /auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusOK, toAuthResp(res))
}

// GET /auth/profile
func (h AuthHandler) Profile(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		fail(c, domain.NewUnauthorized("Unauthorized"))
		return
	}
	u, err := h.Service.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusOK, toUserResp(*u))
}
