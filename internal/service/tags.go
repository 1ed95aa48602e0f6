package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"blog/internal/metrics"
	"blog/internal/model"
	"blog/internal/repository"
)

var tagSeparator = regexp.MustCompile(`,\s*`)

// ParseTagNames splits a comma separated tag string. Names are trimmed;
// empty names and repeats are dropped, first occurrence wins.
func ParseTagNames(raw string) []string {
	parts := tagSeparator.Split(raw, -1)
	seen := make(map[string]struct{}, len(parts))
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// resolveTags finds or creates every tag named in raw.
func resolveTags(ctx context.Context, tags repository.TagRepository, raw string) ([]model.Tag, error) {
	names := ParseTagNames(raw)
	resolved := make([]model.Tag, 0, len(names))
	for _, name := range names {
		tag, created, err := tags.FindOrCreate(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		if created {
			metrics.TagsCreatedTotal.Inc()
		}
		resolved = append(resolved, *tag)
	}
	return resolved, nil
}
