package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "blog/internal/errors"
	"blog/internal/metrics"
	"blog/internal/model"
	"blog/internal/policy"
	"blog/internal/repository"
)

// ArticleInput is the submitted article form.
type ArticleInput struct {
	Title      string
	Content    string
	CategoryID uint
	TagString  string
	// Picture is the raw upload; empty means "no new picture".
	Picture []byte
}

// ArticleForm feeds the create and edit views.
type ArticleForm struct {
	Article    *model.Article   `json:"article,omitempty"`
	Categories []model.Category `json:"categories"`
	TagString  string           `json:"tag_string"`
}

// ArticleView is an article with everything its detail page shows.
type ArticleView struct {
	Article  *model.Article  `json:"article"`
	Author   *model.User     `json:"author"`
	Category *model.Category `json:"category"`
	// Viewer is the authenticated reader, nil for anonymous readers.
	Viewer    *model.User `json:"viewer,omitempty"`
	CanModify bool        `json:"can_modify"`
}

// HomeView is the landing page listing.
type HomeView struct {
	Articles   []model.Article  `json:"articles"`
	Categories []model.Category `json:"categories"`
}

// CategoryView lists the articles of one category.
type CategoryView struct {
	Category   *model.Category  `json:"category"`
	Articles   []model.Article  `json:"articles"`
	Categories []model.Category `json:"categories"`
}

// ArticleService manages the article lifecycle. Every mutation takes the
// acting principal and checks policy.CanModify before writing.
type ArticleService interface {
	Home(ctx context.Context) (*HomeView, error)
	ByCategory(ctx context.Context, categoryID uint) (*CategoryView, error)
	CreateForm(ctx context.Context) (*ArticleForm, error)
	Create(ctx context.Context, p policy.Principal, in ArticleInput) (*model.Article, error)
	Details(ctx context.Context, viewer policy.Principal, id uint) (*ArticleView, error)
	EditForm(ctx context.Context, p policy.Principal, id uint) (*ArticleForm, error)
	Edit(ctx context.Context, p policy.Principal, id uint, in ArticleInput) (*model.Article, error)
	DeleteForm(ctx context.Context, p policy.Principal, id uint) (*ArticleView, error)
	Delete(ctx context.Context, p policy.Principal, id uint) error
}

type articleService struct {
	store     repository.Store
	sanitizer *Sanitizer
	log       zerolog.Logger
}

// NewArticleService creates a new article service.
func NewArticleService(store repository.Store, sanitizer *Sanitizer, log zerolog.Logger) ArticleService {
	return &articleService{
		store:     store,
		sanitizer: sanitizer,
		log:       log.With().Str("component", "articles").Logger(),
	}
}

func (s *articleService) Home(ctx context.Context) (*HomeView, error) {
	articles, err := s.store.Articles().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	categories, err := s.store.Categories().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &HomeView{Articles: articles, Categories: categories}, nil
}

func (s *articleService) ByCategory(ctx context.Context, categoryID uint) (*CategoryView, error) {
	category, err := s.store.Categories().FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("load category %d: %w", categoryID, err)
	}
	articles, err := s.store.Articles().ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list articles of category %d: %w", categoryID, err)
	}
	categories, err := s.store.Categories().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &CategoryView{Category: category, Articles: articles, Categories: categories}, nil
}

func (s *articleService) CreateForm(ctx context.Context) (*ArticleForm, error) {
	categories, err := s.store.Categories().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &ArticleForm{Categories: categories}, nil
}

// Create persists a new article authored by p, creating unseen tags on the way.
func (s *articleService) Create(ctx context.Context, p policy.Principal, in ArticleInput) (*model.Article, error) {
	var article *model.Article
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		author, _, err := resolvePrincipal(ctx, tx.Users(), p)
		if err != nil {
			return err
		}

		category, err := tx.Categories().FindByID(ctx, in.CategoryID)
		if err != nil {
			return findAfterCheck("category", in.CategoryID, err)
		}

		tags, err := resolveTags(ctx, tx.Tags(), in.TagString)
		if err != nil {
			return err
		}

		article = &model.Article{
			Title:      s.sanitizer.Plain(in.Title),
			Content:    s.sanitizer.Content(in.Content),
			Picture:    encodePicture(in.Picture),
			AuthorID:   author.ID,
			CategoryID: category.ID,
			Tags:       tags,
		}
		if err := tx.Articles().Create(ctx, article); err != nil {
			return fmt.Errorf("create article: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ArticlesCreatedTotal.Inc()
	s.log.Info().Uint("article_id", article.ID).Uint("author_id", article.AuthorID).Msg("article created")
	return article, nil
}

// Details needs no policy check; modification rights are only computed for display.
func (s *articleService) Details(ctx context.Context, viewer policy.Principal, id uint) (*ArticleView, error) {
	view, err := s.loadView(ctx, s.store, id)
	if err != nil {
		return nil, err
	}

	if !viewer.IsAnonymous() {
		user, principal, err := resolvePrincipal(ctx, s.store.Users(), viewer)
		if err != nil {
			return nil, err
		}
		view.Viewer = user
		view.CanModify = policy.CanModify(principal, view.Article)
	}
	return view, nil
}

func (s *articleService) EditForm(ctx context.Context, p policy.Principal, id uint) (*ArticleForm, error) {
	article, err := s.loadGuarded(ctx, s.store, p, id)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.Categories().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &ArticleForm{Article: article, Categories: categories, TagString: article.TagString()}, nil
}

// Edit replaces title, content, category and the whole tag set. The author
// never changes; the picture only when a new one is uploaded.
func (s *articleService) Edit(ctx context.Context, p policy.Principal, id uint, in ArticleInput) (*model.Article, error) {
	var article *model.Article
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		article, err = s.loadGuarded(ctx, tx, p, id)
		if err != nil {
			return err
		}

		category, err := tx.Categories().FindByID(ctx, in.CategoryID)
		if err != nil {
			return findAfterCheck("category", in.CategoryID, err)
		}

		tags, err := resolveTags(ctx, tx.Tags(), in.TagString)
		if err != nil {
			return err
		}

		if pic := encodePicture(in.Picture); pic != "" {
			article.Picture = pic
		}
		article.Title = s.sanitizer.Plain(in.Title)
		article.Content = s.sanitizer.Content(in.Content)
		article.CategoryID = category.ID
		article.Tags = tags

		if err := tx.Articles().Update(ctx, article); err != nil {
			return fmt.Errorf("update article %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("article_id", id).Str("by", p.Email).Msg("article updated")
	return article, nil
}

func (s *articleService) DeleteForm(ctx context.Context, p policy.Principal, id uint) (*ArticleView, error) {
	if _, err := s.loadGuarded(ctx, s.store, p, id); err != nil {
		return nil, err
	}
	view, err := s.loadView(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	view.CanModify = true
	return view, nil
}

func (s *articleService) Delete(ctx context.Context, p policy.Principal, id uint) error {
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		article, err := s.loadGuarded(ctx, tx, p, id)
		if err != nil {
			return err
		}
		if err := tx.Articles().Delete(ctx, article); err != nil {
			return fmt.Errorf("delete article %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.ArticlesDeletedTotal.WithLabelValues("author_or_admin").Inc()
	s.log.Info().Uint("article_id", id).Str("by", p.Email).Msg("article deleted")
	return nil
}

// loadArticle checks existence first: a missing article is a redirect, a
// failed lookup after a positive check is fatal.
func (s *articleService) loadArticle(ctx context.Context, store repository.Store, id uint) (*model.Article, error) {
	ok, err := store.Articles().Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check article %d: %w", id, err)
	}
	if !ok {
		return nil, apperrors.ErrArticleNotFound
	}
	article, err := store.Articles().FindByID(ctx, id)
	if err != nil {
		return nil, findAfterCheck("article", id, err)
	}
	return article, nil
}

// loadGuarded loads the article and requires p to be its author or an admin.
func (s *articleService) loadGuarded(ctx context.Context, store repository.Store, p policy.Principal, id uint) (*model.Article, error) {
	article, err := s.loadArticle(ctx, store, id)
	if err != nil {
		return nil, err
	}
	_, principal, err := resolvePrincipal(ctx, store.Users(), p)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			metrics.AccessDeniedTotal.WithLabelValues(metrics.ScopeOwnership).Inc()
		}
		return nil, err
	}
	if !policy.CanModify(principal, article) {
		metrics.AccessDeniedTotal.WithLabelValues(metrics.ScopeOwnership).Inc()
		s.log.Debug().Uint("article_id", id).Str("principal", p.Email).Msg("article modification denied")
		return nil, apperrors.ErrForbidden
	}
	return article, nil
}

func (s *articleService) loadView(ctx context.Context, store repository.Store, id uint) (*ArticleView, error) {
	article, err := s.loadArticle(ctx, store, id)
	if err != nil {
		return nil, err
	}
	author, err := store.Users().FindByID(ctx, article.AuthorID)
	if err != nil {
		return nil, findAfterCheck("author", article.AuthorID, err)
	}
	category, err := store.Categories().FindByID(ctx, article.CategoryID)
	if err != nil {
		return nil, findAfterCheck("category", article.CategoryID, err)
	}
	return &ArticleView{Article: article, Author: author, Category: category}, nil
}
