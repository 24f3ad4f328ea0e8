package lib

import "github.com/gofiber/fiber/v2"

// Pagination holds the skip/limit window parsed from query params.
type Pagination struct {
	Page  int64
	Limit int64
	Skip  int64
}

// ParsePagination reads page/limit query params with sane bounds.
func ParsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	page := int64(c.QueryInt("page", 1))
	if page < 1 {
		page = 1
	}
	limit := int64(c.QueryInt("limit", defaultLimit))
	if limit < 1 || limit > 100 {
		limit = int64(defaultLimit)
	}
	return Pagination{Page: page, Limit: limit, Skip: (page - 1) * limit}
}

// TotalPages converts a document count into a page count for the window.
func (p Pagination) TotalPages(total int64) int64 {
	if total == 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

// HasMore reports whether documents remain past the returned slice.
func (p Pagination) HasMore(returned int, total int64) bool {
	return p.Skip+int64(returned) < total
}

// MessageResponse wraps a human-readable message for API responses.
func MessageResponse(message string) fiber.Map {
	return fiber.Map{"message": message}
}
