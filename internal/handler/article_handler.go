package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "blog/internal/errors"
	appmw "blog/internal/middleware"
	"blog/internal/service"
)

// ArticleHandler serves article views and mutations.
type ArticleHandler struct {
	articles   service.ArticleService
	maxPicture int64
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(articles service.ArticleService, maxPicture int64) *ArticleHandler {
	return &ArticleHandler{articles: articles, maxPicture: maxPicture}
}

// ArticleRequest is the create and edit form.
type ArticleRequest struct {
	Title      string `form:"title" validate:"required,max=255"`
	Content    string `form:"content" validate:"required"`
	CategoryID uint   `form:"category_id" validate:"required,gt=0"`
	TagString  string `form:"tag_string"`
}

// Details godoc
// @Summary Article detail view
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} Page
// @Success 302 "Unknown article, redirected home"
// @Router /article/{id} [get]
func (h *ArticleHandler) Details(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, "/")
	}
	view, err := h.articles.Details(c.Request().Context(), appmw.PrincipalFrom(c), id)
	if err != nil {
		return articleError(c, id, err)
	}
	return render(c, http.StatusOK, view)
}

// CreateForm godoc
// @Summary Article create view
// @Tags articles
// @Produce json
// @Success 200 {object} Page
// @Router /article/create [get]
func (h *ArticleHandler) CreateForm(c echo.Context) error {
	form, err := h.articles.CreateForm(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, form)
}

// Create godoc
// @Summary Create an article
// @Tags articles
// @Accept multipart/form-data
// @Param title formData string true "Title"
// @Param content formData string true "Content (HTML)"
// @Param category_id formData int true "Category ID"
// @Param tag_string formData string false "Comma separated tags"
// @Param picture formData file false "Picture"
// @Success 302
// @Router /article/create [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	const back = "/article/create"
	in, err := h.bind(c)
	if err != nil {
		return formRedirect(c, err, back)
	}

	if _, err := h.articles.Create(c.Request().Context(), appmw.PrincipalFrom(c), in); err != nil {
		return err
	}
	return redirect(c, "/")
}

// EditForm godoc
// @Summary Article edit view
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} Page
// @Success 302 "Unknown article or not allowed"
// @Router /article/edit/{id} [get]
func (h *ArticleHandler) EditForm(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, "/")
	}
	form, err := h.articles.EditForm(c.Request().Context(), appmw.PrincipalFrom(c), id)
	if err != nil {
		return articleError(c, id, err)
	}
	return render(c, http.StatusOK, form)
}

// Edit godoc
// @Summary Edit an article
// @Description Only the author or an admin may edit. Tags are replaced, not merged.
// @Tags articles
// @Accept multipart/form-data
// @Param id path int true "Article ID"
// @Param title formData string true "Title"
// @Param content formData string true "Content (HTML)"
// @Param category_id formData int true "Category ID"
// @Param tag_string formData string false "Comma separated tags"
// @Param picture formData file false "New picture; omit to keep the current one"
// @Success 302
// @Router /article/edit/{id} [post]
func (h *ArticleHandler) Edit(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, "/")
	}
	in, err := h.bind(c)
	if err != nil {
		return formRedirect(c, err, c.Request().URL.Path)
	}

	if _, err := h.articles.Edit(c.Request().Context(), appmw.PrincipalFrom(c), id, in); err != nil {
		return articleError(c, id, err)
	}
	return redirectf(c, "/article/%d", id)
}

// DeleteForm godoc
// @Summary Article delete confirmation view
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} Page
// @Router /article/delete/{id} [get]
func (h *ArticleHandler) DeleteForm(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, "/")
	}
	view, err := h.articles.DeleteForm(c.Request().Context(), appmw.PrincipalFrom(c), id)
	if err != nil {
		return articleError(c, id, err)
	}
	return render(c, http.StatusOK, view)
}

// Delete godoc
// @Summary Delete an article
// @Tags articles
// @Param id path int true "Article ID"
// @Success 302
// @Router /article/delete/{id} [post]
func (h *ArticleHandler) Delete(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return redirect(c, "/")
	}
	if err := h.articles.Delete(c.Request().Context(), appmw.PrincipalFrom(c), id); err != nil {
		return articleError(c, id, err)
	}
	return redirect(c, "/")
}

func (h *ArticleHandler) bind(c echo.Context) (service.ArticleInput, error) {
	var req ArticleRequest
	if err := c.Bind(&req); err != nil {
		return service.ArticleInput{}, apperrors.ErrValidation
	}
	if err := c.Validate(&req); err != nil {
		return service.ArticleInput{}, err
	}
	picture, err := readPicture(c, h.maxPicture)
	if err != nil {
		return service.ArticleInput{}, err
	}
	return service.ArticleInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		TagString:  req.TagString,
		Picture:    picture,
	}, nil
}

// articleError redirects a missing article home and a denied one to its
// detail page. Anything else is fatal.
func articleError(c echo.Context, id uint, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrArticleNotFound):
		return redirect(c, "/")
	case errors.Is(err, apperrors.ErrForbidden):
		return redirectf(c, "/article/%d", id)
	default:
		return err
	}
}
