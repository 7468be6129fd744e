// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// Search handles GET /api/search, querying campgrounds and users in one pass.
func (s *Server) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	p := parsePagination(c, 20)

	results, err := s.searchService.Search(c.Context(), query, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(results)
}
