// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acm searches the ACM Digital Library for a paper title by driving
// a browser through the site's search form and parsing the rendered results
// page.
//
// A Searcher owns one browser session, started on the first search and
// terminated by Close. It is not safe for concurrent use.
package acm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/acm-search/internal/browser"
	"github.com/pdiddy/acm-search/internal/output"
	"github.com/pdiddy/acm-search/pkg/types"
)

// Page is the browser tab the searcher drives. *browser.Chrome implements it.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	Submit(ctx context.Context, selector, text string) error
	WaitFor(ctx context.Context, selector string) error
	HTML(ctx context.Context) (string, error)
	Close() error
}

// launchFunc starts a browser session.
type launchFunc func(ctx context.Context, opts browser.Options) (Page, error)

func launchChrome(ctx context.Context, opts browser.Options) (Page, error) {
	c, err := browser.Launch(ctx, opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Searcher) {
		if log != nil {
			s.log = log
		}
	}
}

// Searcher runs title searches against the ACM Digital Library.
type Searcher struct {
	cfg    types.SearchConfig
	driver string
	launch launchFunc
	log    *zap.Logger

	page   Page
	closed bool
	last   lastResult
}

// lastResult remembers the outcome of the most recent successful search
// for SaveResults.
type lastResult struct {
	ok      bool
	single  bool
	record  *types.ResultRecord
	records []types.ResultRecord
}

// New resolves the browser executable and returns a Searcher. The browser
// itself starts on the first search. It fails with ErrDriverNotFound when
// cfg.DriverPath is unusable, or when it is empty and no known browser is
// on PATH.
func New(cfg types.SearchConfig, opts ...Option) (*Searcher, error) {
	driver, err := browser.ResolveDriver(cfg.DriverPath)
	if err != nil {
		return nil, err
	}
	return newSearcher(cfg, driver, launchChrome, opts...), nil
}

func newSearcher(cfg types.SearchConfig, driver string, launch launchFunc, opts ...Option) *Searcher {
	s := &Searcher{
		cfg:    cfg.WithDefaults(),
		driver: driver,
		launch: launch,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchTop1 returns the highest-ranked result for title, or nil when the
// site reports no results.
func (s *Searcher) SearchTop1(ctx context.Context, title string) (*types.ResultRecord, error) {
	records, err := s.topN(ctx, title, 1)
	if err != nil {
		return nil, err
	}
	var rec *types.ResultRecord
	if len(records) > 0 {
		r := records[0]
		rec = &r
	}
	s.last = lastResult{ok: true, single: true, record: rec}
	return rec, nil
}

// SearchTop20 returns up to 20 results for title in the site's ranked order.
func (s *Searcher) SearchTop20(ctx context.Context, title string) ([]types.ResultRecord, error) {
	return s.SearchTopN(ctx, title, 20)
}

// SearchTopN returns up to n results for title in the site's ranked order.
// The result is never longer than the number of entries on the page.
func (s *Searcher) SearchTopN(ctx context.Context, title string, n int) ([]types.ResultRecord, error) {
	records, err := s.topN(ctx, title, n)
	if err != nil {
		return nil, err
	}
	s.last = lastResult{ok: true, records: records}
	return records, nil
}

// SaveResults writes the outcome of the last successful search to filename
// (default "results.json"): a JSON object or null after SearchTop1, an array
// after SearchTopN. It returns the absolute path written.
func (s *Searcher) SaveResults(filename string) (string, error) {
	if !s.last.ok {
		return "", ErrNothingToSave
	}
	if s.last.single {
		return output.SaveRecord(filename, s.last.record)
	}
	return output.SaveSet(filename, s.last.records)
}

// Close terminates the browser session. Further searches fail with ErrClosed.
func (s *Searcher) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.page == nil {
		return nil
	}
	err := s.page.Close()
	s.page = nil
	s.log.Debug("session released")
	return err
}

func (s *Searcher) topN(ctx context.Context, title string, n int) ([]types.ResultRecord, error) {
	s.last = lastResult{}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyQuery
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}

	log := s.log.With(zap.String("title", title), zap.Int("n", n))
	log.Info("searching ACM Digital Library")

	records, err := s.search(ctx, title, n)
	if err != nil {
		log.Warn("search failed", zap.Error(err))
		return nil, err
	}
	if len(records) > n {
		records = records[:n]
	}
	log.Info("search complete", zap.Int("results", len(records)))
	return records, nil
}

// search runs one query through the site's search form and parses the first
// n entries on the results page.
func (s *Searcher) search(ctx context.Context, title string, n int) ([]types.ResultRecord, error) {
	page, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavigationTimeout)
	err = page.Navigate(navCtx, s.cfg.BaseURL)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNavigation, s.cfg.BaseURL, err)
	}

	s.dismissConsent(ctx, page)

	submitCtx, cancel := context.WithTimeout(ctx, s.cfg.NavigationTimeout)
	err = page.Submit(submitCtx, selSearchInput, title)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		html, _ := page.HTML(ctx)
		return nil, pageParseError(fmt.Sprintf("search input %q not usable: %v", selSearchInput, err), html)
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	err = page.WaitFor(waitCtx, selRendered)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %v", ErrResultsTimeout, s.cfg.Timeout)
		}
		return nil, fmt.Errorf("waiting for results: %w", err)
	}

	html, err := page.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading results page: %w", err)
	}
	return parseResults(html, s.cfg.BaseURL, n)
}

// session returns the live page, launching the browser on first use.
func (s *Searcher) session(ctx context.Context) (Page, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.page != nil {
		return s.page, nil
	}

	page, err := s.launch(ctx, browser.Options{
		ExecPath:  s.driver,
		Headless:  s.cfg.Headless,
		NoSandbox: s.cfg.NoSandbox,
		UserAgent: s.cfg.UserAgent,
		Logger:    s.log,
	})
	if err != nil {
		return nil, err
	}
	s.page = page
	s.log.Debug("session started", zap.String("driver", s.driver))
	return page, nil
}

// dismissConsent declines the cookie dialog if it shows up. The dialog is
// region dependent, so its absence is not an error.
func (s *Searcher) dismissConsent(ctx context.Context, page Page) {
	consentCtx, cancel := context.WithTimeout(ctx, s.cfg.ConsentTimeout)
	defer cancel()
	if err := page.Click(consentCtx, selConsentDecline); err != nil {
		s.log.Debug("no cookie dialog dismissed", zap.Error(err))
	}
}
