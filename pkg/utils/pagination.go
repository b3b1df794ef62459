package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
)

// PageQuery is the parsed and clamped paging input of a list endpoint.
type PageQuery struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination clamps page to >= 1 and limit to [1, maxLimit],
// falling back to defaultLimit when the limit value is absent or not a
// number. Offset is (page-1)*limit.
func ParsePagination(pageVal, limitVal string, defaultLimit, maxLimit int) PageQuery {
	if defaultLimit <= 0 {
		defaultLimit = config.DefaultPageLimit
	}
	if maxLimit <= 0 {
		maxLimit = config.MaxPageLimit
	}

	page, err := strconv.Atoi(pageVal)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(limitVal)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return PageQuery{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// PageQueryFromCtx reads `page` and `limit` query params with the
// global defaults.
func PageQueryFromCtx(c *fiber.Ctx) PageQuery {
	return ParsePagination(c.Query("page"), c.Query("limit"), config.DefaultPageLimit, config.MaxPageLimit)
}
