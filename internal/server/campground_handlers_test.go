package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"campwild/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// campgroundForm builds a multipart request body with the given fields and an
// optional image file.
func campgroundForm(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		part, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestGetCampgrounds(t *testing.T) {
	campgrounds := new(MockCampgroundRepository)
	campgrounds.On("List", mock.Anything, 20, 0).Return([]models.Campground{
		{ID: 1, Name: "Granite Flats"},
		{ID: 2, Name: "Bear Hollow"},
	}, nil)
	campgrounds.On("Count", mock.Anything).Return(int64(2), nil)

	s := newTestServer(new(MockUserRepository), campgrounds, new(MockCommentRepository))
	app := fiber.New()
	app.Get("/campgrounds", s.GetCampgrounds)

	req := httptest.NewRequest(http.MethodGet, "/campgrounds", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Campgrounds []models.Campground `json:"campgrounds"`
		Total       int64               `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Campgrounds, 2)
	assert.Equal(t, int64(2), body.Total)
}

func TestSearchCampgrounds(t *testing.T) {
	t.Run("matches", func(t *testing.T) {
		campgrounds := new(MockCampgroundRepository)
		campgrounds.On("SearchByName", mock.Anything, "granite", 20, 0).
			Return([]models.Campground{{ID: 1, Name: "Granite Flats"}}, nil)

		s := newTestServer(new(MockUserRepository), campgrounds, new(MockCommentRepository))
		app := fiber.New()
		app.Get("/campgrounds/search", s.SearchCampgrounds)

		req := httptest.NewRequest(http.MethodGet, "/campgrounds/search?search=granite", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("empty query rejected", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockCampgroundRepository), new(MockCommentRepository))
		app := fiber.New()
		app.Get("/campgrounds/search", s.SearchCampgrounds)

		req := httptest.NewRequest(http.MethodGet, "/campgrounds/search", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetCampground(t *testing.T) {
	t.Run("found with comments", func(t *testing.T) {
		campgrounds := new(MockCampgroundRepository)
		campgrounds.On("GetByID", mock.Anything, uint(7)).
			Return(&models.Campground{ID: 7, Name: "Granite Flats"}, nil)
		comments := new(MockCommentRepository)
		comments.On("ListByCampground", mock.Anything, uint(7)).
			Return([]models.Comment{{ID: 1, CampgroundID: 7, Text: "Great spot"}}, nil)

		s := newTestServer(new(MockUserRepository), campgrounds, comments)
		app := fiber.New()
		app.Get("/campgrounds/:id", s.GetCampground)

		req := httptest.NewRequest(http.MethodGet, "/campgrounds/7", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Campground models.Campground `json:"campground"`
			Comments   []models.Comment  `json:"comments"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Granite Flats", body.Campground.Name)
		assert.Len(t, body.Comments, 1)
	})

	t.Run("missing", func(t *testing.T) {
		campgrounds := new(MockCampgroundRepository)
		campgrounds.On("GetByID", mock.Anything, uint(42)).
			Return(nil, models.NewNotFoundError("Campground", 42))

		s := newTestServer(new(MockUserRepository), campgrounds, new(MockCommentRepository))
		app := fiber.New()
		app.Get("/campgrounds/:id", s.GetCampground)

		req := httptest.NewRequest(http.MethodGet, "/campgrounds/42", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockCampgroundRepository), new(MockCommentRepository))
		app := fiber.New()
		app.Get("/campgrounds/:id", s.GetCampground)

		req := httptest.NewRequest(http.MethodGet, "/campgrounds/abc", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCreateCampground(t *testing.T) {
	fields := map[string]string{
		"name":        "Granite Flats",
		"price":       "9.00",
		"description": "Quiet site by the river",
		"location":    "Yellowstone National Park",
	}

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Username: "hiker"}, nil)
		campgrounds := new(MockCampgroundRepository)
		campgrounds.On("Create", mock.Anything, mock.Anything).Return(nil)

		s := newTestServer(users, campgrounds, new(MockCommentRepository))
		app := fiber.New()
		app.Post("/campgrounds", asUser(1), s.CreateCampground)

		body, contentType := campgroundForm(t, fields, "site.jpg")
		req := httptest.NewRequest(http.MethodPost, "/campgrounds", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created models.Campground
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		assert.Equal(t, "Granite Flats", created.Name)
		assert.Equal(t, "hiker", created.AuthorUsername)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockCampgroundRepository), new(MockCommentRepository))
		app := fiber.New()
		app.Post("/campgrounds", s.CreateCampground)

		body, contentType := campgroundForm(t, fields, "site.jpg")
		req := httptest.NewRequest(http.MethodPost, "/campgrounds", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing image rejected", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockCampgroundRepository), new(MockCommentRepository))
		app := fiber.New()
		app.Post("/campgrounds", asUser(1), s.CreateCampground)

		body, contentType := campgroundForm(t, fields, "")
		req := httptest.NewRequest(http.MethodPost, "/campgrounds", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("disallowed extension rejected", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockCampgroundRepository), new(MockCommentRepository))
		app := fiber.New()
		app.Post("/campgrounds", asUser(1), s.CreateCampground)

		body, contentType := campgroundForm(t, fields, "site.gif")
		req := httptest.NewRequest(http.MethodPost, "/campgrounds", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateCampground(t *testing.T) {
	t.Run("non-owner forbidden", func(t *testing.T) {
		campgrounds := new(MockCampgroundRepository)
		campgrounds.On("GetByID", mock.Anything, uint(7)).
			Return(&models.Campground{ID: 7, Name: "Granite Flats", AuthorID: 2}, nil)

		s := newTestServer(new(MockUserRepository), campgrounds, new(MockCommentRepository))
		app := fiber.New()
		app.Put("/campgrounds/:id", asUser(1), s.UpdateCampground)

		body, contentType := campgroundForm(t, map[string]string{"name": "Hijacked"}, "")
		req := httptest.NewRequest(http.MethodPut, "/campgrounds/7", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner edits fields", func(t *testing.T) {
		campgrounds := new(MockCampgroundRepository)
		campgrounds.On("GetByID", mock.Anything, uint(7)).
			Return(&models.Campground{ID: 7, Name: "Granite Flats", AuthorID: 1}, nil)
		campgrounds.On("Update", mock.Anything, mock.Anything).Return(nil)

		s := newTestServer(new(MockUserRepository), campgrounds, new(MockCommentRepository))
		app := fiber.New()
		app.Put("/campgrounds/:id", asUser(1), s.UpdateCampground)

		body, contentType := campgroundForm(t, map[string]string{"description": "Now with showers"}, "")
		req := httptest.NewRequest(http.MethodPut, "/campgrounds/7", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.Campground
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
		assert.Equal(t, "Now with showers", updated.Description)
	})
}

func TestDeleteCampground(t *testing.T) {
	campgrounds := new(MockCampgroundRepository)
	campgrounds.On("GetByID", mock.Anything, uint(7)).
		Return(&models.Campground{ID: 7, AuthorID: 1}, nil)
	campgrounds.On("Delete", mock.Anything, uint(7)).Return(nil)

	s := newTestServer(new(MockUserRepository), campgrounds, new(MockCommentRepository))
	app := fiber.New()
	app.Delete("/campgrounds/:id", asUser(1), s.DeleteCampground)

	req := httptest.NewRequest(http.MethodDelete, "/campgrounds/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	campgrounds.AssertCalled(t, "Delete", mock.Anything, uint(7))
}
