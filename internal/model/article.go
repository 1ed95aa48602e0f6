package model

import (
	"strings"
	"time"
)

// Article is a blog post. AuthorID is fixed at creation.
type Article struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Title      string `json:"title" gorm:"size:255;not null"`
	Content    string `json:"content" gorm:"not null"`
	Picture    string `json:"picture,omitempty"`
	AuthorID   uint   `json:"author_id" gorm:"not null;index"`
	CategoryID uint   `json:"category_id" gorm:"not null;index"`
	Tags       []Tag  `json:"tags" gorm:"many2many:articles_tags;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagString joins the tag names the way the edit form expects them.
func (a *Article) TagString() string {
	names := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}
