package model

import "time"

// Document categories.
const (
	CategoryLaw          = "법령"
	CategorySupervisory  = "감독규정"
	CategoryBestPractice = "모범규준"
	CategoryInternalRule = "사규"
)

// Categories lists every category in display order.
var Categories = []string{CategoryLaw, CategorySupervisory, CategoryBestPractice, CategoryInternalRule}

// Source types.
const (
	SourceFile    = "file"
	SourceCrawler = "crawler"
)

func IsKnownCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsUploadCategory reports whether documents of category c may be uploaded
// as files. Statutes and supervisory rules come from the law API only.
func IsUploadCategory(c string) bool {
	return c == CategoryBestPractice || c == CategoryInternalRule
}

// Document is identified by (Name, Category). Re-ingesting the same identity
// replaces its articles and keeps the ID.
type Document struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null;uniqueIndex:idx_documents_identity,priority:1" json:"name"`
	Category     string    `gorm:"size:32;not null;uniqueIndex:idx_documents_identity,priority:2" json:"category"`
	Filename     string    `gorm:"size:255" json:"filename"`
	EnactedDate  *string   `gorm:"size:10" json:"enacted_date"` // YYYY-MM-DD
	SourceType   string    `gorm:"size:16;not null" json:"source_type"`
	ArticleCount int       `gorm:"not null;default:0" json:"article_count"`
	Articles     []Article `gorm:"constraint:OnDelete:CASCADE" json:"articles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
