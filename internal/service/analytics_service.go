package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/octolens/octolens/internal/analytics"
	"github.com/octolens/octolens/internal/cache"
	"github.com/octolens/octolens/internal/domain"
	"github.com/octolens/octolens/internal/port"
)

// View types served by the dispatcher.
const (
	ViewUser      = "user"
	ViewRepos     = "repos"
	ViewLanguages = "languages"
	ViewCommits   = "commits"
	ViewAnalytics = "analytics"
)

const analyticsRepoPreview = 20

// ErrInvalidViewType reports an unknown type query parameter.
var ErrInvalidViewType = errors.New("invalid type parameter")

// AnalyticsService computes the aggregated profile views. Results are
// memoized in the injected cache keyed by (username, view type, window
// length); the upstream provider is only hit on a miss.
type AnalyticsService struct {
	provider        port.GitHubProvider
	cache           *cache.Cache
	langRepoLimit   int
	commitRepoLimit int
	now             func() time.Time
}

// NewAnalyticsService creates the service. langRepoLimit and commitRepoLimit
// bound the fan-out width for the languages and commits views.
func NewAnalyticsService(provider port.GitHubProvider, c *cache.Cache, langRepoLimit, commitRepoLimit int) *AnalyticsService {
	return &AnalyticsService{
		provider:        provider,
		cache:           c,
		langRepoLimit:   langRepoLimit,
		commitRepoLimit: commitRepoLimit,
		now:             time.Now,
	}
}

// View returns the payload for one view, reporting whether it was served
// from cache. Failures fetching the user or the repository list are fatal;
// per-repository fetch failures inside a fan-out are absorbed.
func (s *AnalyticsService) View(ctx context.Context, username, viewType string, days int) (any, bool, error) {
	key := cacheKey(username, viewType, days)
	if v, ok := s.cache.Get(key); ok {
		return v, true, nil
	}

	payload, err := s.compute(ctx, username, viewType, days)
	if err != nil {
		return nil, false, err
	}

	s.cache.Put(key, payload)
	return payload, false, nil
}

func (s *AnalyticsService) compute(ctx context.Context, username, viewType string, days int) (any, error) {
	switch viewType {
	case ViewUser:
		return s.provider.FetchUser(ctx, username)
	case ViewRepos:
		return s.provider.FetchRepositories(ctx, username)
	case ViewLanguages:
		return s.languagesView(ctx, username)
	case ViewCommits:
		return s.commitsView(ctx, username, days)
	case ViewAnalytics:
		return s.analyticsView(ctx, username, days)
	default:
		return nil, ErrInvalidViewType
	}
}

func (s *AnalyticsService) languagesView(ctx context.Context, username string) (*domain.LanguagesView, error) {
	repos, err := s.provider.FetchRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	byRepo := s.collectLanguages(ctx, username, repos)
	return &domain.LanguagesView{
		Languages:  analytics.AggregateLanguages(repos, byRepo),
		TotalRepos: len(repos),
	}, nil
}

func (s *AnalyticsService) commitsView(ctx context.Context, username string, days int) (*domain.CommitsView, error) {
	repos, err := s.provider.FetchRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	byRepo := s.collectCommits(ctx, username, repos, days)
	dates := flattenDates(byRepo)
	return &domain.CommitsView{
		Timeseries:   analytics.BuildTimeseries(dates, days, s.now()),
		ByRepo:       analytics.RankRepoCommits(repos, byRepo),
		TotalCommits: len(dates),
	}, nil
}

func (s *AnalyticsService) analyticsView(ctx context.Context, username string, days int) (*domain.AnalyticsView, error) {
	user, err := s.provider.FetchUser(ctx, username)
	if err != nil {
		return nil, err
	}
	repos, err := s.provider.FetchRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	// Both fan-outs are independent; run them side by side.
	var (
		wg        sync.WaitGroup
		langMap   map[string]domain.LanguageBytes
		commitMap map[string][]domain.CommitRecord
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		langMap = s.collectLanguages(ctx, username, repos)
	}()
	go func() {
		defer wg.Done()
		commitMap = s.collectCommits(ctx, username, repos, days)
	}()
	wg.Wait()

	languages := analytics.AggregateLanguages(repos, langMap)
	dates := flattenDates(commitMap)
	series := analytics.BuildTimeseries(dates, days, s.now())
	byRepo := analytics.RankRepoCommits(repos, commitMap)
	stats := analytics.ComputeUserStats(repos, languages, byRepo, len(dates))

	preview := repos
	if len(preview) > analyticsRepoPreview {
		preview = preview[:analyticsRepoPreview]
	}

	return &domain.AnalyticsView{
		User:      user,
		Repos:     preview,
		Languages: languages,
		Commits: domain.CommitsSummary{
			Timeseries: series,
			ByRepo:     byRepo,
			Total:      len(dates),
		},
		Stats:    stats,
		Insights: analytics.GenerateInsights(stats, series),
		Heatmap:  analytics.BuildHeatmap(series),
	}, nil
}

// collectLanguages fans out over a prefix of the repository list as it
// arrived from upstream (most recently pushed first).
func (s *AnalyticsService) collectLanguages(ctx context.Context, username string, repos []domain.Repository) map[string]domain.LanguageBytes {
	limit := min(s.langRepoLimit, len(repos))
	return fanOut(ctx, repos[:limit], "languages", func(ctx context.Context, repo domain.Repository) (domain.LanguageBytes, error) {
		return s.provider.FetchLanguages(ctx, username, repo.Name)
	})
}

// collectCommits re-sorts by push recency before taking the fan-out prefix,
// then drops repositories with no commits in the window.
func (s *AnalyticsService) collectCommits(ctx context.Context, username string, repos []domain.Repository, days int) map[string][]domain.CommitRecord {
	sorted := make([]domain.Repository, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PushedAt.After(sorted[j].PushedAt)
	})

	limit := min(s.commitRepoLimit, len(sorted))
	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)

	byRepo := fanOut(ctx, sorted[:limit], "commits", func(ctx context.Context, repo domain.Repository) ([]domain.CommitRecord, error) {
		return s.provider.FetchCommits(ctx, username, repo.Name, since)
	})

	for name, commits := range byRepo {
		if len(commits) == 0 {
			delete(byRepo, name)
		}
	}
	return byRepo
}

func flattenDates(byRepo map[string][]domain.CommitRecord) []time.Time {
	var dates []time.Time
	for _, commits := range byRepo {
		for _, c := range commits {
			dates = append(dates, c.AuthorDate)
		}
	}
	return dates
}

func cacheKey(username, viewType string, days int) string {
	switch viewType {
	case ViewCommits, ViewAnalytics:
		return fmt.Sprintf("%s:%s:%d", username, viewType, days)
	}
	return username + ":" + viewType
}
