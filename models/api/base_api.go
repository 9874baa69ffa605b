package apimodels

import (
	"github.com/go-playground/validator/v10"

	"talentflow-backend/apperrors"
	"talentflow-backend/lib/query"
)

// ListResponse is the list envelope of the API contract.
type ListResponse struct {
	Data       interface{}      `json:"data"`
	Pagination query.Pagination `json:"pagination"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

func NewList(data interface{}, pagination query.Pagination) ListResponse {
	return ListResponse{Data: data, Pagination: pagination}
}

func NewError(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

type Pagination struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"pageSize" query:"pageSize"`
}

// GetPage normalizes the requested page, falling back to the given page size
// and capping oversized requests.
func (p Pagination) GetPage(defaultSize int) (page, pageSize int) {
	page = 1
	pageSize = defaultSize
	if p.Page > 0 {
		page = p.Page
	}
	if p.PageSize > 0 {
		pageSize = p.PageSize
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

var validate = validator.New()

// Validate runs struct-tag validation and normalizes the failure into a
// ValidationFailure error.
func Validate(payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		return apperrors.NewValidation("invalid request: %s", err.Error())
	}
	return nil
}
