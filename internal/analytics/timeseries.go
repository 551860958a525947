package analytics

import (
	"sort"
	"time"

	"github.com/octolens/octolens/internal/domain"
)

const (
	dayKeyFormat   = "2006-01-02"
	dayLabelFormat = "Jan 2"
	topRepoRanks   = 10
)

// BuildTimeseries buckets commit author dates into `days` contiguous UTC
// calendar days, the last bucket being now's date. Bucket identity is the
// calendar date, so output order never depends on commit arrival order, and
// membership in a bucket is the authoritative window filter: commits outside
// the window match no key and are dropped. Every day appears exactly once
// even with zero commits.
func BuildTimeseries(dates []time.Time, days int, now time.Time) []domain.CommitBucket {
	buckets := make([]domain.CommitBucket, 0, max(days, 0))
	if days <= 0 {
		return buckets
	}

	today := now.UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(days - 1))

	counts := make(map[string]int, days)
	for i := 0; i < days; i++ {
		counts[start.AddDate(0, 0, i).Format(dayKeyFormat)] = 0
	}

	for _, t := range dates {
		key := t.UTC().Format(dayKeyFormat)
		if _, ok := counts[key]; ok {
			counts[key]++
		}
	}

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		buckets = append(buckets, domain.CommitBucket{
			Date:      day.Format(dayLabelFormat),
			Commits:   counts[day.Format(dayKeyFormat)],
			Timestamp: day.UnixMilli(),
		})
	}
	return buckets
}

// RankRepoCommits counts in-window commits per repository, keeps only
// repositories with activity, and returns the top entries by count with
// their canonical web URLs.
func RankRepoCommits(repos []domain.Repository, commitsByRepo map[string][]domain.CommitRecord) []domain.RepoCommitRank {
	ranked := make([]domain.RepoCommitRank, 0, len(commitsByRepo))
	for _, repo := range repos {
		n := len(commitsByRepo[repo.Name])
		if n == 0 {
			continue
		}
		ranked = append(ranked, domain.RepoCommitRank{
			Name:    repo.Name,
			Commits: n,
			URL:     repo.HTMLURL,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Commits > ranked[j].Commits
	})

	if len(ranked) > topRepoRanks {
		ranked = ranked[:topRepoRanks]
	}
	return ranked
}

// BuildHeatmap lays the bucket series out as a week-by-weekday grid for the
// contribution heatmap. Weeks advance after each Saturday.
func BuildHeatmap(series []domain.CommitBucket) []domain.HeatmapCell {
	cells := make([]domain.HeatmapCell, 0, len(series))
	week := 0
	for _, b := range series {
		day := time.UnixMilli(b.Timestamp).UTC()
		dow := int(day.Weekday())
		cells = append(cells, domain.HeatmapCell{
			Week:    week,
			Day:     dow,
			Commits: b.Commits,
			Date:    day.Format(dayKeyFormat),
		})
		if dow == 6 {
			week++
		}
	}
	return cells
}
