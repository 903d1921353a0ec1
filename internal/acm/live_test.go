// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acm

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/acm-search/pkg/types"
)

// liveSearcher returns a Searcher driving a real browser against
// dl.acm.org. Set ACM_SEARCH_LIVE=1 (and optionally ACM_SEARCH_DRIVER_PATH)
// to run these tests; keep them infrequent, the site rate limits.
func liveSearcher(t *testing.T) *Searcher {
	t.Helper()
	if os.Getenv("ACM_SEARCH_LIVE") != "1" {
		t.Skip("set ACM_SEARCH_LIVE=1 to query dl.acm.org")
	}
	cfg := types.DefaultSearchConfig()
	cfg.DriverPath = os.Getenv("ACM_SEARCH_DRIVER_PATH")
	cfg.Timeout = 30 * time.Second

	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLiveSearchTop1(t *testing.T) {
	s := liveSearcher(t)

	rec, err := s.SearchTop1(context.Background(), "Attention Is All You Need")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Contains(t, strings.ToLower(rec.Title), "attention is all you need")

	path := filepath.Join(t.TempDir(), "results.json")
	_, err = s.SaveResults(path)
	require.NoError(t, err)
}

func TestLiveSearchNonsense(t *testing.T) {
	s := liveSearcher(t)

	rec, err := s.SearchTop1(context.Background(), "qzxvwplk frobnicated xyzzyplugh glorbnax")
	require.NoError(t, err)
	assert.Nil(t, rec)
}
