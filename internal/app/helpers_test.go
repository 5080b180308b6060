package app

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"sentinel-ds/internal/config"
	"sentinel-ds/internal/lawapi"
	"sentinel-ds/internal/lawtext"
	"sentinel-ds/internal/model"
	sqliteClient "sentinel-ds/internal/platform/sqlite"
	"sentinel-ds/internal/repository"
)

type fakeExtractor struct {
	pages     []lawtext.Page
	err       error
	calls     int
	deadlines []time.Time
}

func (f *fakeExtractor) ExtractPages(ctx context.Context, r io.Reader) ([]lawtext.Page, error) {
	f.calls++
	if d, ok := ctx.Deadline(); ok {
		f.deadlines = append(f.deadlines, d)
	}
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	return f.pages, f.err
}

type fakeFetcher struct {
	results map[string]*lawapi.Result
	errs    map[string]error
}

func (f *fakeFetcher) Fetch(ctx context.Context, name string, t lawapi.LawType) (*lawapi.Result, error) {
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	if r, ok := f.results[name]; ok {
		return r, nil
	}
	return &lawapi.Result{Name: name, Type: t}, nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.calls++
	return nil
}

type fakePublisher struct {
	jobs []model.RefreshJob
	err  error
}

func (p *fakePublisher) PublishRefresh(ctx context.Context, job model.RefreshJob) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, job)
	return nil
}

type testEnv struct {
	docs      *repository.DocumentRepository
	runs      *repository.IngestRunRepository
	extractor *fakeExtractor
	fetcher   *fakeFetcher
	cache     *countingInvalidator
	publisher *fakePublisher
	logHook   *test.Hook
	ingest    *IngestService
	search    *SearchService
	documents *DocumentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqliteClient.New(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	env := &testEnv{
		docs:      repository.NewDocumentRepository(db),
		runs:      repository.NewIngestRunRepository(db),
		extractor: &fakeExtractor{},
		fetcher:   &fakeFetcher{results: map[string]*lawapi.Result{}, errs: map[string]error{}},
		cache:     &countingInvalidator{},
		publisher: &fakePublisher{},
		logHook:   hook,
	}
	env.ingest = NewIngestService(IngestDeps{
		Documents: env.docs,
		Runs:      env.runs,
		Extractor: env.extractor,
		Fetcher:   env.fetcher,
		Catalog:   config.DefaultCatalog(),
		Cache:     env.cache,
		Publisher: env.publisher,
		Log:       logger,
	})
	env.search = NewSearchService(env.docs, nil, logger)
	env.documents = NewDocumentService(env.docs, env.cache, logger)
	return env
}

var errConnRefused = errors.New("connection refused")

func twoPageRule() []lawtext.Page {
	return []lawtext.Page{
		{Number: 1, Text: "리스크관리규정\n\n제1조(목적) 이 규정은 회사의 리스크관리에 필요한 기본적인 사항을 정함을 목적으로 한다."},
		{Number: 2, Text: "제2조(위험한도)\n① 회사는 위험유형별 한도를 설정하여\n운영하여야 한다.\n② 리스크관리위원회는 한도의 적정성을 매년 점검한다.\n부 칙\n이 규정은 2024년 3월 15일부터 시행한다."},
	}
}

func remoteArticles(prefix string) []lawtext.Article {
	return []lawtext.Article{
		{Number: "제1조", Title: "목적", Text: prefix + " 제1조(목적) 이 법은 투자자를 보호한다."},
		{Number: "제2조", Title: "정의", Text: prefix + " 제2조(정의) 금융투자상품이란 원본손실 위험이 있는 상품을 말한다."},
	}
}
