package app

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"sentinel-ds/internal/cache"
	"sentinel-ds/internal/model"
	"sentinel-ds/internal/repository"
)

const (
	snippetBefore    = 30
	snippetAfter     = 100
	snippetFallback  = 130
	snippetEllipsis  = "…"
	defaultPageLimit = 100
	maxPageLimit     = 500
)

// SearchResultCache is the read-through cache consulted by SearchService.
type SearchResultCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64, key cache.SearchKey) ([]model.SearchHit, bool, error)
	Set(ctx context.Context, version int64, key cache.SearchKey, hits []model.SearchHit) error
}

type SearchService struct {
	docs  *repository.DocumentRepository
	cache SearchResultCache
	log   logrus.FieldLogger
}

func NewSearchService(docs *repository.DocumentRepository, resultCache SearchResultCache, log logrus.FieldLogger) *SearchService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SearchService{docs: docs, cache: resultCache, log: log}
}

type SearchInput struct {
	Keyword    string
	Categories []string
	Limit      int
	Offset     int
}

type SearchResultItem struct {
	model.SearchHit
	Snippet string `json:"snippet"`
}

type SearchResult struct {
	Keyword string             `json:"keyword"`
	Count   int                `json:"count"`
	Items   []SearchResultItem `json:"items"`
}

// Search finds articles containing the keyword. A blank keyword matches
// nothing. Categories, when given, must all be known.
func (s *SearchService) Search(ctx context.Context, input SearchInput) (*SearchResult, error) {
	keyword := strings.TrimSpace(input.Keyword)
	result := &SearchResult{Keyword: keyword, Items: []SearchResultItem{}}
	if keyword == "" {
		return result, nil
	}

	categories := make([]string, 0, len(input.Categories))
	for _, c := range input.Categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !model.IsKnownCategory(c) {
			return nil, ErrInvalidInput
		}
		categories = append(categories, c)
	}
	if input.Offset < 0 {
		return nil, ErrInvalidInput
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	key := cache.SearchKey{Keyword: keyword, Categories: categories, Limit: limit, Offset: input.Offset}
	hits, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}

	for _, h := range hits {
		result.Items = append(result.Items, SearchResultItem{SearchHit: h, Snippet: Snippet(h.ArticleText, keyword)})
	}
	result.Count = len(result.Items)
	return result, nil
}

func (s *SearchService) lookup(ctx context.Context, key cache.SearchKey) ([]model.SearchHit, error) {
	var (
		version int64
		cached  bool
	)
	if s.cache != nil {
		v, err := s.cache.Version(ctx)
		if err != nil {
			s.log.WithError(err).Warn("read search cache version failed")
		} else {
			version, cached = v, true
			hits, ok, err := s.cache.Get(ctx, version, key)
			if err != nil {
				s.log.WithError(err).Warn("read search cache failed")
			} else if ok {
				return hits, nil
			}
		}
	}

	hits, err := s.docs.Search(ctx, repository.SearchQuery{
		Keyword:    key.Keyword,
		Categories: key.Categories,
		Limit:      key.Limit,
		Offset:     key.Offset,
	})
	if err != nil {
		return nil, err
	}
	if hits == nil {
		hits = []model.SearchHit{}
	}

	if cached {
		if err := s.cache.Set(ctx, version, key, hits); err != nil {
			s.log.WithError(err).Warn("write search cache failed")
		}
	}
	return hits, nil
}

// Snippet returns the text around the first occurrence of keyword: up to 30
// characters before it and 100 after it, with ellipses where text was cut.
// Without a match it returns the first 130 characters.
func Snippet(text, keyword string) string {
	runes := []rune(text)
	idx := strings.Index(text, keyword)
	if keyword == "" || idx < 0 {
		if len(runes) <= snippetFallback {
			return text
		}
		return string(runes[:snippetFallback]) + snippetEllipsis
	}

	hit := utf8.RuneCountInString(text[:idx])
	start := hit - snippetBefore
	if start < 0 {
		start = 0
	}
	end := hit + utf8.RuneCountInString(keyword) + snippetAfter
	if end > len(runes) {
		end = len(runes)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(snippetEllipsis)
	}
	b.WriteString(string(runes[start:end]))
	if end < len(runes) {
		b.WriteString(snippetEllipsis)
	}
	return b.String()
}
