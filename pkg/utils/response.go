package utils

import (
	"github.com/gofiber/fiber/v2"
)

// FieldError is one schema-validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Pagination is the paging block attached to list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Envelope is the uniform JSON body every endpoint responds with.
type Envelope struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message,omitempty"`
	Data       interface{}  `json:"data,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
}

// NewPagination derives the full paging block from page/limit/total.
func NewPagination(page, limit int, total int64) *Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(page)*int64(limit) < total,
		HasPrev:    page > 1,
	}
}

func SendData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(&Envelope{
		Success: true,
		Data:    data,
	})
}

func SendPaginated(c *fiber.Ctx, data interface{}, p *Pagination) error {
	return c.Status(fiber.StatusOK).JSON(&Envelope{
		Success:    true,
		Data:       data,
		Pagination: p,
	})
}

func SendMessage(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(&Envelope{
		Success: status < 400,
		Message: msg,
	})
}

func SendError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(&Envelope{
		Success: false,
		Message: msg,
	})
}

func SendValidationErrors(c *fiber.Ctx, errs []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(&Envelope{
		Success: false,
		Message: "validation failed",
		Errors:  errs,
	})
}
