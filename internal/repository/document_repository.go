package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"sentinel-ds/internal/lawtext"
	"sentinel-ds/internal/model"
)

const articleBatchSize = 200

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// UpsertInput carries document metadata. An empty EnactedDate stores NULL.
type UpsertInput struct {
	Name        string
	Category    string
	Filename    string
	EnactedDate string
	SourceType  string
}

type ReplaceInput struct {
	UpsertInput
	Articles []lawtext.Article
}

// Replace stores a document and its full article set in one transaction:
// the document is located by (name, category) and updated in place or
// inserted, its previous articles are removed, the new ones are inserted in
// order, and the cached article count is refreshed. Any failure leaves the
// previous state untouched.
func (r *DocumentRepository) Replace(ctx context.Context, input ReplaceInput) (*model.Document, error) {
	var doc *model.Document
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &DocumentRepository{db: tx}

		upserted, err := txRepo.UpsertDocument(ctx, input.UpsertInput)
		if err != nil {
			return err
		}
		count, err := txRepo.InsertArticles(ctx, upserted.ID, input.Articles)
		if err != nil {
			return err
		}
		if err := txRepo.UpdateArticleCount(ctx, upserted.ID, count); err != nil {
			return err
		}
		upserted.ArticleCount = count
		doc = upserted
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("replace document failed: %w", err)
	}
	return doc, nil
}

// UpsertDocument finds the document by (name, category). An existing one
// loses its articles and gets the new metadata; otherwise a new row is
// created. The returned document always carries a stable ID.
func (r *DocumentRepository) UpsertDocument(ctx context.Context, input UpsertInput) (*model.Document, error) {
	db := r.db.WithContext(ctx)

	var enacted *string
	if input.EnactedDate != "" {
		d := input.EnactedDate
		enacted = &d
	}

	existing, err := r.GetByIdentity(ctx, input.Name, input.Category)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		doc := &model.Document{
			Name:        input.Name,
			Category:    input.Category,
			Filename:    input.Filename,
			EnactedDate: enacted,
			SourceType:  input.SourceType,
		}
		if err := db.Create(doc).Error; err != nil {
			return nil, fmt.Errorf("create document failed: %w", err)
		}
		return doc, nil
	}

	if err := db.Where("document_id = ?", existing.ID).Delete(&model.Article{}).Error; err != nil {
		return nil, fmt.Errorf("delete document articles failed: %w", err)
	}

	now := time.Now()
	updates := map[string]any{
		"filename":      input.Filename,
		"enacted_date":  enacted,
		"source_type":   input.SourceType,
		"article_count": 0,
		"updated_at":    now,
	}
	if err := db.Model(&model.Document{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update document failed: %w", err)
	}

	existing.Filename = input.Filename
	existing.EnactedDate = enacted
	existing.SourceType = input.SourceType
	existing.ArticleCount = 0
	existing.UpdatedAt = now
	return existing, nil
}

// InsertArticles appends articles in the given order and returns how many
// were stored. Candidates with blank text are skipped.
func (r *DocumentRepository) InsertArticles(ctx context.Context, documentID uint, articles []lawtext.Article) (int, error) {
	rows := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if strings.TrimSpace(a.Text) == "" {
			continue
		}
		row := model.Article{
			DocumentID: documentID,
			Number:     a.Number,
			Title:      a.Title,
			Text:       a.Text,
			Position:   len(rows),
		}
		if a.Page > 0 {
			page := a.Page
			row.PageNumber = &page
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(&rows, articleBatchSize).Error; err != nil {
		return 0, fmt.Errorf("create articles batch failed: %w", err)
	}
	return len(rows), nil
}

func (r *DocumentRepository) UpdateArticleCount(ctx context.Context, documentID uint, count int) error {
	err := r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ?", documentID).
		Update("article_count", count).Error
	if err != nil {
		return fmt.Errorf("update article count failed: %w", err)
	}
	return nil
}

// Delete removes the document and its articles. It reports false when no
// such document exists.
func (r *DocumentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&model.Article{}).Error; err != nil {
			return fmt.Errorf("delete document articles failed: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&model.Document{})
		if res.Error != nil {
			return fmt.Errorf("delete document failed: %w", res.Error)
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uint) (*model.Document, error) {
	var doc model.Document
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query document by id failed: %w", err)
	}
	return &doc, nil
}

func (r *DocumentRepository) GetByIdentity(ctx context.Context, name, category string) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).
		Where("name = ? AND category = ?", name, category).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query document by identity failed: %w", err)
	}
	return &doc, nil
}

// List returns documents, most recently updated first. An empty category
// lists all of them.
func (r *DocumentRepository) List(ctx context.Context, category string) ([]model.Document, error) {
	q := r.db.WithContext(ctx)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var list []model.Document
	if err := q.Order("updated_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	return list, nil
}

// ListArticles returns a document's articles in discovery order.
func (r *DocumentRepository) ListArticles(ctx context.Context, documentID uint) ([]model.Article, error) {
	var list []model.Article
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("position ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list articles failed: %w", err)
	}
	return list, nil
}

type SearchQuery struct {
	Keyword    string
	Categories []string // empty = all categories
	Limit      int      // <= 0 = no limit
	Offset     int
}

// Search returns articles whose text contains the keyword, ordered by
// document name and then discovery order.
func (r *DocumentRepository) Search(ctx context.Context, query SearchQuery) ([]model.SearchHit, error) {
	q := r.db.WithContext(ctx).
		Table("articles").
		Select(`documents.id AS document_id,
			documents.name AS document_name,
			documents.category AS category,
			documents.enacted_date AS enacted_date,
			articles.id AS article_id,
			articles.number AS article_number,
			articles.title AS article_title,
			articles.text AS article_text,
			articles.page_number AS page_number,
			articles.position AS position`).
		Joins("JOIN documents ON documents.id = articles.document_id").
		Where("articles.text LIKE ? ESCAPE '!'", "%"+escapeLike(query.Keyword)+"%")
	if len(query.Categories) > 0 {
		q = q.Where("documents.category IN ?", query.Categories)
	}
	q = q.Order("documents.name ASC").Order("articles.position ASC")
	if query.Limit > 0 {
		q = q.Limit(query.Limit).Offset(query.Offset)
	}

	var hits []model.SearchHit
	if err := q.Scan(&hits).Error; err != nil {
		return nil, fmt.Errorf("search articles failed: %w", err)
	}
	return hits, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
