package http

import (
	"net/http"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/employee"
	"github.com/agrifarm/farmpay-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	ListMin(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

func (h *employeeHandlerImpl) ListMin(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.ListMin(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
