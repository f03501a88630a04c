package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-catalog/internal/service"
)

// BookHandler exposes the catalog endpoints. Reads are public; create,
// update and delete sit behind the JWT middleware.
type BookHandler struct {
	Catalog *service.CatalogService
}

func NewBookHandler(catalog *service.CatalogService) *BookHandler {
	return &BookHandler{Catalog: catalog}
}

type bookReq struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

func (r bookReq) input() service.BookInput {
	return service.BookInput{Title: r.Title, Author: r.Author, Description: r.Description}
}

// List handles GET /books.
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

// Get handles GET /books/:id.
func (h *BookHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	book, err := h.Catalog.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

// Create handles POST /books. The new book is owned by the requester.
func (h *BookHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	book, err := h.Catalog.Create(c.Request().Context(), req.input(), &uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, book)
}

// Update handles PUT /books/:id: a full replace of title, author and
// description. Any authenticated user may update any book.
func (h *BookHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	if err := h.Catalog.Update(c.Request().Context(), id, req.input()); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /books/:id.
func (h *BookHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Catalog.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Search handles GET /books/search?query=. Matching is literal
// substring containment against title or author.
func (h *BookHandler) Search(c echo.Context) error {
	books, err := h.Catalog.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}
