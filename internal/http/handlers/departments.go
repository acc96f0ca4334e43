package handlers

import (
	"net/http"

	"hrms/internal/domain/models"
	"hrms/internal/http/response"
	"hrms/internal/http/validation"
	"hrms/internal/services"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	Service *services.DepartmentService
}

// GET /departments
func (h DepartmentHandler) List(c *gin.Context) {
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
	response.Write(c, http.StatusOK, mapSlice(rows, toDepartmentResp))
}

// GET /departments/:id
func (h DepartmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := h.Service.FindOne(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusOK, toDepartmentResp(*d))
}

// POST /departments
func (h DepartmentHandler) Create(c *gin.Context) {
	var req createDepartmentReq
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.Service.Create(c.Request.Context(), models.DepartmentCreate{DeptNo: req.DeptNo, DeptName: req.DeptName})
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusCreated, toDepartmentResp(*d))
}

// PUT /departments/:id
func (h DepartmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateDepartmentReq
	if !bindJSON(c, &req) {
		return
	}
	var patch models.DepartmentUpdate
	if present(req.DeptName) {
		patch.DeptName = req.DeptName
	}
	d, err := h.Service.Update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusOK, toDepartmentResp(*d))
}

// DELETE /departments/:id
func (h DepartmentHandler) Delete(c *gin.Context) {
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
