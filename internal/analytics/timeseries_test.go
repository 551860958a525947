package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octolens/octolens/internal/domain"
)

func TestBuildTimeseries_BucketCompleteness(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

	for _, days := range []int{1, 7, 90, 365} {
		buckets := BuildTimeseries(nil, days, now)

		require.Len(t, buckets, days, "days=%d", days)

		// Contiguous consecutive calendar days, chronological.
		for i := 1; i < len(buckets); i++ {
			assert.Equal(t, int64(24*time.Hour/time.Millisecond),
				buckets[i].Timestamp-buckets[i-1].Timestamp,
				"gap between buckets %d and %d for days=%d", i-1, i, days)
		}

		// Last bucket is today.
		last := time.UnixMilli(buckets[len(buckets)-1].Timestamp).UTC()
		assert.Equal(t, now.Format("2006-01-02"), last.Format("2006-01-02"))
	}
}

func TestBuildTimeseries_ConcreteWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 3, 15, 4, 5, 0, time.UTC)
	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC),
	}

	buckets := BuildTimeseries(dates, 3, now)

	require.Len(t, buckets, 3)
	assert.Equal(t, "Jan 1", buckets[0].Date)
	assert.Equal(t, 3, buckets[0].Commits)
	assert.Equal(t, "Jan 2", buckets[1].Date)
	assert.Equal(t, 0, buckets[1].Commits)
	assert.Equal(t, "Jan 3", buckets[2].Date)
	assert.Equal(t, 1, buckets[2].Commits)
}

func TestBuildTimeseries_DropsCommitsOutsideWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	dates := []time.Time{
		time.Date(2023, 12, 25, 10, 0, 0, 0, time.UTC), // before the window
		time.Date(2024, 1, 4, 0, 0, 1, 0, time.UTC),    // after today
		time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
	}

	buckets := BuildTimeseries(dates, 3, now)

	total := 0
	for _, b := range buckets {
		total += b.Commits
	}
	assert.Equal(t, 1, total)
}

func TestBuildTimeseries_IndependentOfArrivalOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	forward := []time.Time{
		time.Date(2024, 3, 8, 1, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 9, 1, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC),
	}
	backward := []time.Time{forward[2], forward[1], forward[0]}

	assert.Equal(t, BuildTimeseries(forward, 5, now), BuildTimeseries(backward, 5, now))
}

func TestBuildTimeseries_NonPositiveDays(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	assert.Empty(t, BuildTimeseries(nil, 0, now))
	assert.Empty(t, BuildTimeseries(nil, -7, now))
}

func TestRankRepoCommits_CapsAtTen(t *testing.T) {
	t.Parallel()

	var repos []domain.Repository
	byRepo := make(map[string][]domain.CommitRecord)
	for i := 1; i <= 15; i++ {
		name := fmt.Sprintf("repo-%02d", i)
		repos = append(repos, repoNamed(name))
		commits := make([]domain.CommitRecord, i)
		byRepo[name] = commits
	}

	ranked := RankRepoCommits(repos, byRepo)

	require.Len(t, ranked, 10)
	assert.Equal(t, "repo-15", ranked[0].Name)
	assert.Equal(t, 15, ranked[0].Commits)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Commits, ranked[i].Commits)
	}
}

func TestRankRepoCommits_FiltersZeroAndAttachesURL(t *testing.T) {
	t.Parallel()

	repos := []domain.Repository{repoNamed("active"), repoNamed("idle")}
	byRepo := map[string][]domain.CommitRecord{
		"active": make([]domain.CommitRecord, 4),
		"idle":   nil,
	}

	ranked := RankRepoCommits(repos, byRepo)

	require.Len(t, ranked, 1)
	assert.Equal(t, "active", ranked[0].Name)
	assert.Equal(t, "https://github.com/octocat/active", ranked[0].URL)
}

func TestBuildHeatmap_WeekAdvancesAfterSaturday(t *testing.T) {
	t.Parallel()

	// 2024-06-01 is a Saturday, so the second cell starts a new week.
	now := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	series := BuildTimeseries(nil, 5, now)

	cells := BuildHeatmap(series)

	require.Len(t, cells, 5)
	assert.Equal(t, 0, cells[0].Week)
	assert.Equal(t, 6, cells[0].Day) // Saturday
	assert.Equal(t, 1, cells[1].Week)
	assert.Equal(t, 0, cells[1].Day) // Sunday
	assert.Equal(t, "2024-06-01", cells[0].Date)
}

func TestBuildHeatmap_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, BuildHeatmap(nil))
}
