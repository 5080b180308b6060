package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"sentinel-ds/internal/config"
	"sentinel-ds/internal/lawapi"
	"sentinel-ds/internal/lawtext"
	"sentinel-ds/internal/model"
	"sentinel-ds/internal/repository"
)

const defaultIngestTimeout = 30 * time.Second

// PageExtractor turns a binary document into page text.
type PageExtractor interface {
	ExtractPages(ctx context.Context, r io.Reader) ([]lawtext.Page, error)
}

// LawFetcher retrieves a law from the law information service.
type LawFetcher interface {
	Fetch(ctx context.Context, name string, t lawapi.LawType) (*lawapi.Result, error)
}

// SearchInvalidator is told whenever the searchable corpus changes.
type SearchInvalidator interface {
	Invalidate(ctx context.Context) error
}

// JobPublisher hands refresh jobs to a background worker.
type JobPublisher interface {
	PublishRefresh(ctx context.Context, job model.RefreshJob) error
}

type IngestDeps struct {
	Documents *repository.DocumentRepository
	Runs      *repository.IngestRunRepository
	Extractor PageExtractor
	Fetcher   LawFetcher
	Catalog   *config.Catalog
	Segmenter *lawtext.Segmenter
	Cache     SearchInvalidator // optional
	Publisher JobPublisher      // optional
	Timeout   time.Duration     // per document
	Log       logrus.FieldLogger
}

type IngestService struct {
	docs      *repository.DocumentRepository
	runs      *repository.IngestRunRepository
	extractor PageExtractor
	fetcher   LawFetcher
	catalog   *config.Catalog
	segmenter *lawtext.Segmenter
	cache     SearchInvalidator
	publisher JobPublisher
	timeout   time.Duration
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewIngestService(deps IngestDeps) *IngestService {
	s := &IngestService{
		docs:      deps.Documents,
		runs:      deps.Runs,
		extractor: deps.Extractor,
		fetcher:   deps.Fetcher,
		catalog:   deps.Catalog,
		segmenter: deps.Segmenter,
		cache:     deps.Cache,
		publisher: deps.Publisher,
		timeout:   deps.Timeout,
		log:       deps.Log,
		now:       time.Now,
	}
	if s.segmenter == nil {
		s.segmenter = lawtext.NewSegmenter()
	}
	if s.catalog == nil {
		s.catalog = config.DefaultCatalog()
	}
	if s.timeout <= 0 {
		s.timeout = defaultIngestTimeout
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	return s
}

// ParseDocument extracts and segments a file without storing anything.
func (s *IngestService) ParseDocument(ctx context.Context, data []byte) ([]lawtext.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	pages, err := s.extractor.ExtractPages(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return s.segmenter.Segment(pages), nil
}

// ExtractEnactedDate extracts a file and looks for its enforcement date.
func (s *IngestService) ExtractEnactedDate(ctx context.Context, data []byte) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	pages, err := s.extractor.ExtractPages(ctx, bytes.NewReader(data))
	if err != nil {
		return "", false, err
	}
	date, ok := lawtext.ExtractEnactedDate(joinPages(pages))
	return date, ok, nil
}

// FetchRemoteArticles returns the normalized articles and effective date of a
// law from the law information service.
func (s *IngestService) FetchRemoteArticles(ctx context.Context, name string, t lawapi.LawType) ([]lawtext.Article, string, error) {
	result, err := s.fetcher.Fetch(ctx, name, t)
	if err != nil {
		return nil, "", err
	}
	return result.Articles, result.EnactedDate, nil
}

type FileInput struct {
	Name     string
	Category string
	Filename string
	Data     []byte
}

type IngestResult struct {
	Document     *model.Document `json:"document"`
	ArticleCount int             `json:"article_count"`
	EnactedDate  string          `json:"enacted_date,omitempty"`
}

// Preview is a dry-run parse of a file.
type Preview struct {
	Articles    []lawtext.Article `json:"articles"`
	EnactedDate string            `json:"enacted_date,omitempty"`
	Pages       int               `json:"pages"`
}

// PreviewFile segments a file and detects its date from one extraction pass.
func (s *IngestService) PreviewFile(ctx context.Context, data []byte) (*Preview, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	pages, err := s.extractor.ExtractPages(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	date, _ := lawtext.ExtractEnactedDate(joinPages(pages))
	return &Preview{Articles: s.segmenter.Segment(pages), EnactedDate: date, Pages: len(pages)}, nil
}

// IngestFile stores an uploaded PDF. Only internal-rule categories may be
// uploaded. A file without recognizable articles yields ErrNoArticles and
// leaves any existing version untouched.
func (s *IngestService) IngestFile(ctx context.Context, input FileInput) (*IngestResult, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	if name == "" || !model.IsUploadCategory(category) || len(input.Data) == 0 {
		return nil, ErrInvalidInput
	}

	log := s.log.WithFields(logrus.Fields{"document": name, "category": category})

	preview, err := s.PreviewFile(ctx, input.Data)
	if err != nil {
		log.WithError(err).Error("extract uploaded file failed")
		return nil, err
	}
	if len(preview.Articles) == 0 {
		log.Warn("uploaded file has no recognizable articles")
		return nil, ErrNoArticles
	}

	doc, err := s.docs.Replace(ctx, repository.ReplaceInput{
		UpsertInput: repository.UpsertInput{
			Name:        name,
			Category:    category,
			Filename:    input.Filename,
			EnactedDate: preview.EnactedDate,
			SourceType:  model.SourceFile,
		},
		Articles: preview.Articles,
	})
	if err != nil {
		log.WithError(err).Error("store uploaded document failed")
		return nil, err
	}
	s.invalidateSearch(ctx)

	log.WithFields(logrus.Fields{"articles": doc.ArticleCount, "document_id": doc.ID}).Info("document uploaded")
	return &IngestResult{Document: doc, ArticleCount: doc.ArticleCount, EnactedDate: preview.EnactedDate}, nil
}

// IngestOutcome is the result of refreshing one managed law.
type IngestOutcome struct {
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Success      bool        `json:"success"`
	Message      string      `json:"message"`
	Kind         FailureKind `json:"kind,omitempty"`
	ArticleCount int         `json:"article_count"`
	EnactedDate  string      `json:"enacted_date,omitempty"`
	DocumentID   uint        `json:"document_id,omitempty"`
}

// IngestSingle fetches one managed law and replaces its stored copy. It never
// returns an error: every failure is described in the outcome.
func (s *IngestService) IngestSingle(ctx context.Context, law config.ManagedLaw) IngestOutcome {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	outcome := IngestOutcome{Name: law.Name, Category: law.Category}
	log := s.log.WithFields(logrus.Fields{"document": law.Name, "category": law.Category})

	fail := func(err error) IngestOutcome {
		outcome.Kind = Classify(err)
		outcome.Message = fmt.Sprintf("%s: %v", law.Name, err)
		if outcome.Kind == KindEmpty {
			log.Warn("no articles received")
		} else {
			log.WithError(err).WithField("kind", outcome.Kind).Error("ingest law failed")
		}
		return outcome
	}

	lawType, err := lawapi.ParseLawType(law.Type)
	if err != nil {
		return fail(err)
	}
	articles, date, err := s.FetchRemoteArticles(ctx, law.Name, lawType)
	if err != nil {
		return fail(err)
	}
	if len(articles) == 0 {
		return fail(ErrNoArticles)
	}

	doc, err := s.docs.Replace(ctx, repository.ReplaceInput{
		UpsertInput: repository.UpsertInput{
			Name:        law.Name,
			Category:    law.Category,
			EnactedDate: date,
			SourceType:  model.SourceCrawler,
		},
		Articles: articles,
	})
	if err != nil {
		return fail(err)
	}
	s.invalidateSearch(ctx)

	dateLabel := date
	if dateLabel == "" {
		dateLabel = "unknown"
	}
	outcome.Success = true
	outcome.ArticleCount = doc.ArticleCount
	outcome.EnactedDate = date
	outcome.DocumentID = doc.ID
	outcome.Message = fmt.Sprintf("%s: %d articles (effective %s)", law.Name, doc.ArticleCount, dateLabel)
	log.WithFields(logrus.Fields{"articles": doc.ArticleCount, "document_id": doc.ID}).Info("law ingested")
	return outcome
}

type BatchReport struct {
	RunID      string          `json:"run_id"`
	Trigger    string          `json:"trigger"`
	Attempted  int             `json:"attempted"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
	Outcomes   []IngestOutcome `json:"outcomes"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

// UpdateAll refreshes the given laws one after another. A failure only
// affects its own document; earlier commits stay in place. The run is
// recorded even when every document fails.
func (s *IngestService) UpdateAll(ctx context.Context, laws []config.ManagedLaw, trigger string) *BatchReport {
	report := &BatchReport{
		RunID:     uuid.NewString(),
		Trigger:   trigger,
		Attempted: len(laws),
		Outcomes:  make([]IngestOutcome, 0, len(laws)),
		StartedAt: s.now(),
	}
	log := s.log.WithFields(logrus.Fields{"run_id": report.RunID, "trigger": trigger})
	log.WithField("laws", len(laws)).Info("law update started")

	for _, law := range laws {
		outcome := s.IngestSingle(ctx, law)
		if outcome.Success {
			report.Succeeded++
		} else {
			report.Failed++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
	report.FinishedAt = s.now()

	if err := s.recordRun(ctx, report); err != nil {
		log.WithError(err).Error("record ingest run failed")
	}
	log.WithFields(logrus.Fields{"succeeded": report.Succeeded, "failed": report.Failed}).Info("law update finished")
	return report
}

// Refresh runs UpdateAll over the named catalog entries (all when empty).
func (s *IngestService) Refresh(ctx context.Context, names []string, trigger string) (*BatchReport, error) {
	laws, err := s.catalog.Select(names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.UpdateAll(ctx, laws, trigger), nil
}

// EnqueueRefresh validates the names and publishes a refresh job.
func (s *IngestService) EnqueueRefresh(ctx context.Context, names []string) (*model.RefreshJob, error) {
	if _, err := s.catalog.Select(names); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if s.publisher == nil {
		return nil, ErrRefreshUnavailable
	}
	job := model.RefreshJob{JobID: uuid.NewString(), Names: names, RequestedAt: s.now()}
	if err := s.publisher.PublishRefresh(ctx, job); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"job_id": job.JobID, "names": names}).Info("refresh job queued")
	return &job, nil
}

// HandleRefresh runs a queued refresh job.
func (s *IngestService) HandleRefresh(ctx context.Context, job model.RefreshJob) error {
	_, err := s.Refresh(ctx, job.Names, model.TriggerQueue)
	return err
}

func (s *IngestService) Catalog() []config.ManagedLaw {
	laws, _ := s.catalog.Select(nil)
	return laws
}

func (s *IngestService) ListRuns(ctx context.Context, limit int) ([]model.IngestRun, error) {
	return s.runs.ListRecent(ctx, limit)
}

func (s *IngestService) recordRun(ctx context.Context, report *BatchReport) error {
	if s.runs == nil {
		return nil
	}
	results, err := json.Marshal(report.Outcomes)
	if err != nil {
		return fmt.Errorf("marshal run outcomes failed: %w", err)
	}
	return s.runs.Create(ctx, &model.IngestRun{
		RunID:      report.RunID,
		Trigger:    report.Trigger,
		Attempted:  report.Attempted,
		Succeeded:  report.Succeeded,
		Failed:     report.Failed,
		Results:    datatypes.JSON(results),
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
	})
}

func (s *IngestService) invalidateSearch(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("invalidate search cache failed")
	}
}

func joinPages(pages []lawtext.Page) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n")
}
