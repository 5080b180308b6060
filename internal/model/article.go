package model

import "time"

type Article struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DocumentID uint      `gorm:"not null;index:idx_articles_document_position,priority:1" json:"document_id"`
	Number     string    `gorm:"size:32;not null" json:"number"`
	Title      string    `gorm:"size:255" json:"title"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	PageNumber *int      `json:"page_number"` // nil for API-sourced articles
	Position   int       `gorm:"not null;index:idx_articles_document_position,priority:2" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

// SearchHit is one matching article joined with its document.
type SearchHit struct {
	DocumentID    uint    `json:"document_id"`
	DocumentName  string  `json:"document_name"`
	Category      string  `json:"category"`
	EnactedDate   *string `json:"enacted_date"`
	ArticleID     uint    `json:"article_id"`
	ArticleNumber string  `json:"article_number"`
	ArticleTitle  string  `json:"article_title"`
	ArticleText   string  `json:"article_text"`
	PageNumber    *int    `json:"page_number"`
	Position      int     `json:"position"`
}
