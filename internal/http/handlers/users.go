package handlers

import (
	"net/http"

	"hrms/internal/http/response"
	"hrms/internal/http/validation"
	"hrms/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Service *services.UserService
}

// GET /users
func (h UserHandler) List(c *gin.Context) {
	page, err := validation.ParsePage(c)
	if err != nil {
		fail(c, err)
		return
	}
	rows, err := h.Service.FindAll(c.Request.Context(), page)
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusOK, mapSlice(rows, toUserResp))
}

// GET /users/:id
func (h UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := h.Service.FindOne(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusOK, toUserResp(*u))
}

// POST /users
func (h UserHandler) Create(c *gin.Context) {
	var req createUserReq
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Service.Create(c.Request.Context(), services.NewUser{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
		FullName: req.FullName,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusCreated, toUserResp(*u))
}

// PUT /users/:id
func (h UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateUserReq
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Service.Update(c.Request.Context(), id, req.toPatch())
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusOK, toUserResp(*u))
}

// DELETE /users/:id
func (h UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Service.Remove(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}
