package domain

// LanguageDatum is one row of the aggregated language distribution.
type LanguageDatum struct {
	Name       string  `json:"name"`
	Bytes      int64   `json:"bytes"`
	Repos      int     `json:"repos"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// CommitBucket is one calendar day in the trailing window. Date is a short
// display label ("Jan 2"); Timestamp is the UTC midnight of the bucket in
// epoch milliseconds, which is what the chart consumers sort and plot by.
type CommitBucket struct {
	Date      string `json:"date"`
	Commits   int    `json:"commits"`
	Timestamp int64  `json:"timestamp"`
}

// RepoCommitRank is a repository's commit count within the window.
type RepoCommitRank struct {
	Name    string `json:"name"`
	Commits int    `json:"commits"`
	URL     string `json:"url"`
}

// UserStats summarizes a profile across all fetched views. TopLanguage and
// MostActiveRepo are null when no data exists, never an empty string.
type UserStats struct {
	TotalStars     int     `json:"totalStars"`
	TotalForks     int     `json:"totalForks"`
	TotalRepos     int     `json:"totalRepos"`
	TotalCommits   int     `json:"totalCommits"`
	TopLanguage    *string `json:"topLanguage"`
	MostActiveRepo *string `json:"mostActiveRepo"`
}

// HeatmapCell is one day of the week-by-weekday contribution grid.
type HeatmapCell struct {
	Week    int    `json:"week"`
	Day     int    `json:"day"`
	Commits int    `json:"commits"`
	Date    string `json:"date"`
}

// LanguagesView is the payload for type=languages.
type LanguagesView struct {
	Languages  []LanguageDatum `json:"languages"`
	TotalRepos int             `json:"totalRepos"`
}

// CommitsView is the payload for type=commits.
type CommitsView struct {
	Timeseries   []CommitBucket   `json:"timeseries"`
	ByRepo       []RepoCommitRank `json:"byRepo"`
	TotalCommits int              `json:"totalCommits"`
}

// CommitsSummary is the commits block embedded in the analytics view.
type CommitsSummary struct {
	Timeseries []CommitBucket   `json:"timeseries"`
	ByRepo     []RepoCommitRank `json:"byRepo"`
	Total      int              `json:"total"`
}

// AnalyticsView is the combined payload for type=analytics.
type AnalyticsView struct {
	User      *UserProfile    `json:"user"`
	Repos     []Repository    `json:"repos"`
	Languages []LanguageDatum `json:"languages"`
	Commits   CommitsSummary  `json:"commits"`
	Stats     UserStats       `json:"stats"`
	Insights  []string        `json:"insights"`
	Heatmap   []HeatmapCell   `json:"heatmap"`
}

// RateLimitInfo is the upstream quota snapshot attached to every response
// envelope. Remaining and Reset are null until the first upstream call.
type RateLimitInfo struct {
	Remaining *int   `json:"remaining"`
	Reset     *int64 `json:"reset"`
}
