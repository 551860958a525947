package analytics

import (
	"fmt"

	"github.com/octolens/octolens/internal/domain"
)

// ComputeUserStats derives the profile summary from the aggregated views.
// TopLanguage and MostActiveRepo stay nil when there is no data.
func ComputeUserStats(repos []domain.Repository, languages []domain.LanguageDatum, byRepo []domain.RepoCommitRank, totalCommits int) domain.UserStats {
	stats := domain.UserStats{
		TotalRepos:   len(repos),
		TotalCommits: totalCommits,
	}
	for _, r := range repos {
		stats.TotalStars += r.Stars
		stats.TotalForks += r.Forks
	}
	if len(languages) > 0 {
		name := languages[0].Name
		stats.TopLanguage = &name
	}
	if len(byRepo) > 0 {
		name := byRepo[0].Name
		stats.MostActiveRepo = &name
	}
	return stats
}

// GenerateInsights emits human-readable summary facts in a fixed order,
// skipping any whose precondition is unmet. Pure function, no I/O.
func GenerateInsights(stats domain.UserStats, series []domain.CommitBucket) []string {
	insights := make([]string, 0, 4)

	if stats.TopLanguage != nil {
		insights = append(insights, fmt.Sprintf("Most used language: %s", *stats.TopLanguage))
	}
	if stats.MostActiveRepo != nil {
		insights = append(insights, fmt.Sprintf("Most active repository: %s", *stats.MostActiveRepo))
	}

	if len(series) > 0 {
		// Earliest bucket wins ties for the peak day.
		peak := series[0]
		total := 0
		for _, b := range series {
			total += b.Commits
			if b.Commits > peak.Commits {
				peak = b
			}
		}
		if peak.Commits > 0 {
			insights = append(insights, fmt.Sprintf("Peak activity day: %s with %d commits", peak.Date, peak.Commits))
		}
		avg := float64(total) / float64(len(series))
		insights = append(insights, fmt.Sprintf("Average commits per day: %.1f", avg))
	}

	return insights
}
