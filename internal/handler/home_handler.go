package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "blog/internal/errors"
	"blog/internal/service"
)

// HomeHandler serves the listings and the access-denied page.
type HomeHandler struct {
	articles service.ArticleService
}

// NewHomeHandler creates a new home handler.
func NewHomeHandler(articles service.ArticleService) *HomeHandler {
	return &HomeHandler{articles: articles}
}

// Home godoc
// @Summary Home listing
// @Tags articles
// @Produce json
// @Success 200 {object} Page
// @Router / [get]
func (h *HomeHandler) Home(c echo.Context) error {
	view, err := h.articles.Home(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, view)
}

// Category godoc
// @Summary Articles of one category
// @Tags articles
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} Page
// @Router /category/{id} [get]
func (h *HomeHandler) Category(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, "/")
	}
	view, err := h.articles.ByCategory(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			return redirect(c, "/")
		}
		return err
	}
	return render(c, http.StatusOK, view)
}

// Forbidden godoc
// @Summary Access-denied view
// @Tags errors
// @Produce json
// @Success 403 {object} Page
// @Router /error/403 [get]
func (h *HomeHandler) Forbidden(c echo.Context) error {
	return render(c, http.StatusForbidden, MessageView{Message: "You do not have permission to view this page."})
}
