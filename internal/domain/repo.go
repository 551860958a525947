package domain

import "time"

// RepoOwner is the owner summary embedded in a repository payload.
type RepoOwner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// Repository represents one repository owned by the profiled user.
type Repository struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Private       bool      `json:"private"`
	Owner         RepoOwner `json:"owner"`
	HTMLURL       string    `json:"html_url"`
	Description   *string   `json:"description"`
	Fork          bool      `json:"fork"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PushedAt      time.Time `json:"pushed_at"`
	Homepage      *string   `json:"homepage"`
	Size          int       `json:"size"`
	Stars         int       `json:"stargazers_count"`
	Watchers      int       `json:"watchers_count"`
	Language      *string   `json:"language"`
	Forks         int       `json:"forks_count"`
	OpenIssues    int       `json:"open_issues_count"`
	DefaultBranch string    `json:"default_branch"`
	Topics        []string  `json:"topics"`
}

// LanguageBytes is one repository's language breakdown: language name to
// byte count. May be empty for binary-only or empty repositories.
type LanguageBytes map[string]int64

// CommitRecord is a single commit reduced to what aggregation needs. The
// author date is the authoritative timestamp for bucketing, not the
// committer date.
type CommitRecord struct {
	SHA        string    `json:"sha"`
	Repo       string    `json:"repo"`
	AuthorDate time.Time `json:"author_date"`
	Message    string    `json:"message"`
}
