package handlers

import (
	"net/http"
	"strings"

	"hrms/internal/http/response"
	"hrms/internal/http/validation"
	"hrms/internal/services"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	Service *services.EmployeeService
}

// GET /employees?pageId=&pageSize=
func (h EmployeeHandler) List(c *gin.Context) {
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
	response.Write(c, http.StatusOK, mapSlice(rows, toEmployeeResp))
}

// GET /employees/find-gender?gender=M|F
func (h EmployeeHandler) FindByGender(c *gin.Context) {
	var q genderQuery
	if err := validation.BindQuery(c, &q); err != nil {
		fail(c, err)
		return
	}
	rows, err := h.Service.FindByGender(c.Request.Context(), q.Gender)
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusOK, mapSlice(rows, toEmployeeResp))
}

// GET /employees/typed-sql/:empNo
func (h EmployeeHandler) FindByEmpNo(c *gin.Context) {
	empNo, ok := pathID(c, "empNo")
	if !ok {
		return
	}
	emp, err := h.Service.FindByEmpNo(c.Request.Context(), empNo)
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusOK, toEmployeeResp(*emp))
}

// GET /employees/search/:name
func (h EmployeeHandler) SearchByName(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		fail(c, validation.Failed("name should not be empty"))
		return
	}
	rows, err := h.Service.SearchByName(c.Request.Context(), name)
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusOK, mapSlice(rows, toEmployeeResp))
}

// GET /employees/roster.pdf?gender=
func (h EmployeeHandler) RosterPDF(c *gin.Context) {
	var q rosterQuery
	if err := validation.BindQuery(c, &q); err != nil {
		fail(c, err)
		return
	}
	body, filename, err := h.Service.RosterPDF(c.Request.Context(), q.Gender)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}

// GET /employees/:id
func (h EmployeeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	emp, err := h.Service.FindOne(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusOK, toEmployeeResp(*emp))
}

// POST /employees
func (h EmployeeHandler) Create(c *gin.Context) {
	var req createEmployeeReq
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		fail(c, err)
		return
	}
	emp, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusCreated, toEmployeeResp(*emp))
}

// PUT /employees/:id
func (h EmployeeHandler) Update(c *gin.Context) {
	h.update(c, false)
}

// PUT /employees/transaction/:id
func (h EmployeeHandler) UpdateTransaction(c *gin.Context) {
	h.update(c, true)
}

func (h EmployeeHandler) update(c *gin.Context, inTx bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateEmployeeReq
	if !bindJSON(c, &req) {
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		fail(c, err)
		return
	}

	update := h.Service.Update
	if inTx {
		update = h.Service.UpdateTransaction
	}
	emp, err := update(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	response.Write(c, http.StatusOK, toEmployeeResp(*emp))
}

// DELETE /employees/:id
func (h EmployeeHandler) Delete(c *gin.Context) {
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
