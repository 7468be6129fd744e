// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"campwild/internal/models"
	"campwild/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCampgrounds handles GET /api/campgrounds
func (s *Server) GetCampgrounds(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	campgrounds, total, err := s.campgroundService.ListCampgrounds(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"campgrounds": campgrounds,
		"total":       total,
		"limit":       p.Limit,
		"offset":      p.Offset,
	})
}

// SearchCampgrounds handles GET /api/campgrounds/search
func (s *Server) SearchCampgrounds(c *fiber.Ctx) error {
	query := c.Query("search")
	p := parsePagination(c, 20)

	campgrounds, err := s.campgroundService.SearchCampgrounds(c.Context(), query, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"campgrounds": campgrounds,
		"query":       query,
	})
}

// GetCampground handles GET /api/campgrounds/:id and returns the listing
// together with its comments.
func (s *Server) GetCampground(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	campground, comments, err := s.campgroundService.GetCampground(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"campground": campground,
		"comments":   comments,
	})
}

// CreateCampground handles POST /api/campgrounds. The request is a multipart
// form carrying the listing fields and the required image.
func (s *Server) CreateCampground(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name" form:"name"`
		Price       string `json:"price" form:"price"`
		Description string `json:"description" form:"description"`
		Location    string `json:"location" form:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	image, err := imageFromForm(c, "image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded image"))
	}

	campground, err := s.campgroundService.CreateCampground(c.Context(), service.CreateCampgroundInput{
		UserID:      s.currentUserID(c),
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Location:    req.Location,
		Image:       image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(campground)
}

// UpdateCampground handles PUT /api/campgrounds/:id. Empty fields are left
// unchanged; a new image replaces the stored one.
func (s *Server) UpdateCampground(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name" form:"name"`
		Price       string `json:"price" form:"price"`
		Description string `json:"description" form:"description"`
		Location    string `json:"location" form:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	image, err := imageFromForm(c, "image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded image"))
	}

	campground, err := s.campgroundService.UpdateCampground(c.Context(), service.UpdateCampgroundInput{
		UserID:       s.currentUserID(c),
		CampgroundID: id,
		Name:         req.Name,
		Price:        req.Price,
		Description:  req.Description,
		Location:     req.Location,
		Image:        image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(campground)
}

// DeleteCampground handles DELETE /api/campgrounds/:id
func (s *Server) DeleteCampground(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.campgroundService.DeleteCampground(c.Context(), service.DeleteCampgroundInput{
		UserID:       s.currentUserID(c),
		CampgroundID: id,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Campground deleted!",
	})
}
