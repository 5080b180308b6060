package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"sentinel-ds/internal/model"
	"sentinel-ds/internal/repository"
)

type DocumentService struct {
	docs  *repository.DocumentRepository
	cache SearchInvalidator
	log   logrus.FieldLogger
}

func NewDocumentService(docs *repository.DocumentRepository, cache SearchInvalidator, log logrus.FieldLogger) *DocumentService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DocumentService{docs: docs, cache: cache, log: log}
}

type DocumentDetail struct {
	Document *model.Document `json:"document"`
	Articles []model.Article `json:"articles"`
}

// List returns documents, newest first. category must be empty or known.
func (s *DocumentService) List(ctx context.Context, category string) ([]model.Document, error) {
	if category != "" && !model.IsKnownCategory(category) {
		return nil, ErrInvalidInput
	}
	return s.docs.List(ctx, category)
}

func (s *DocumentService) Get(ctx context.Context, id uint) (*DocumentDetail, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	articles, err := s.docs.ListArticles(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DocumentDetail{Document: doc, Articles: articles}, nil
}

// Delete removes a document together with all of its articles.
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	deleted, err := s.docs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrDocumentNotFound
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.WithError(err).Warn("invalidate search cache failed")
		}
	}
	s.log.WithField("document_id", id).Info("document deleted")
	return nil
}
