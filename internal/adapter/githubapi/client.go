package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/octolens/octolens/internal/domain"
	"github.com/octolens/octolens/internal/port"
)

const perPage = 100

// Options configures the upstream client.
type Options struct {
	Token     string        // personal access token, empty for unauthenticated
	BaseURL   string        // API base URL override, empty for api.github.com
	Timeout   time.Duration // per-call timeout, defaults to 10s
	RepoCap   int           // max repositories listed per user, defaults to 100
	CommitCap int           // max commits listed per repository, defaults to 1000
}

// Client talks to the GitHub REST API. It paginates list endpoints up to a
// configured cap, classifies failures into the port error taxonomy, and
// never retries. It also keeps a snapshot of the most recently observed
// rate-limit headers for the response envelope.
type Client struct {
	gh        *github.Client
	timeout   time.Duration
	repoCap   int
	commitCap int

	mu        sync.Mutex
	remaining *int
	reset     *int64
}

// New creates a GitHub API client. A non-empty token raises the rate-limit
// ceiling but does not change response shapes.
func New(opts Options) (*Client, error) {
	var hc *http.Client
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		hc = oauth2.NewClient(context.Background(), ts)
	}

	gh := github.NewClient(hc)
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse github api url: %w", err)
		}
		gh.BaseURL = u
	}

	c := &Client{
		gh:        gh,
		timeout:   opts.Timeout,
		repoCap:   opts.RepoCap,
		commitCap: opts.CommitCap,
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}
	if c.repoCap <= 0 {
		c.repoCap = 100
	}
	if c.commitCap <= 0 {
		c.commitCap = 1000
	}
	return c, nil
}

// FetchUser returns the public profile for a username.
func (c *Client) FetchUser(ctx context.Context, username string) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u, resp, err := c.gh.Users.Get(ctx, username)
	c.record(resp)
	if err != nil {
		return nil, fmt.Errorf("fetch user %q: %w", username, classify(err))
	}

	return &domain.UserProfile{
		Login:           u.GetLogin(),
		ID:              u.GetID(),
		AvatarURL:       u.GetAvatarURL(),
		Name:            u.Name,
		Company:         u.Company,
		Blog:            u.Blog,
		Location:        u.Location,
		Email:           u.Email,
		Hireable:        u.Hireable,
		Bio:             u.Bio,
		TwitterUsername: u.TwitterUsername,
		PublicRepos:     u.GetPublicRepos(),
		PublicGists:     u.GetPublicGists(),
		Followers:       u.GetFollowers(),
		Following:       u.GetFollowing(),
		CreatedAt:       u.GetCreatedAt().Time,
		UpdatedAt:       u.GetUpdatedAt().Time,
	}, nil
}

// FetchRepositories returns the user's owned repositories sorted by most
// recent push, paginating until a short page or the cap is reached.
func (c *Client) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := &github.RepositoryListOptions{
		Type:      "owner",
		Sort:      "pushed",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var all []domain.Repository
	for {
		repos, resp, err := c.gh.Repositories.List(ctx, username, opts)
		c.record(resp)
		if err != nil {
			return nil, fmt.Errorf("list repos for %q: %w", username, classify(err))
		}

		for _, r := range repos {
			all = append(all, convertRepo(r))
		}

		if resp.NextPage == 0 || len(all) >= c.repoCap {
			break
		}
		opts.Page = resp.NextPage
	}

	if len(all) > c.repoCap {
		all = all[:c.repoCap]
	}
	return all, nil
}

// FetchLanguages returns one repository's language byte breakdown.
func (c *Client) FetchLanguages(ctx context.Context, owner, repo string) (domain.LanguageBytes, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	langs, resp, err := c.gh.Repositories.ListLanguages(ctx, owner, repo)
	c.record(resp)
	if err != nil {
		return nil, fmt.Errorf("list languages for %s/%s: %w", owner, repo, classify(err))
	}

	out := make(domain.LanguageBytes, len(langs))
	for name, bytes := range langs {
		out[name] = int64(bytes)
	}
	return out, nil
}

// FetchCommits returns commits authored since the given instant. The
// upstream answers 409 (and sometimes 404) for empty repositories; both
// mean zero commits here, not an error.
func (c *Client) FetchCommits(ctx context.Context, owner, repo string, since time.Time) ([]domain.CommitRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := &github.CommitsListOptions{
		Since: since,
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var all []domain.CommitRecord
	for {
		commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
		c.record(resp)
		if err != nil {
			if isEmptyRepo(err) {
				return all, nil
			}
			return nil, fmt.Errorf("list commits for %s/%s: %w", owner, repo, classify(err))
		}

		for _, rc := range commits {
			all = append(all, domain.CommitRecord{
				SHA:        rc.GetSHA(),
				Repo:       repo,
				AuthorDate: rc.GetCommit().GetAuthor().GetDate().Time,
				Message:    rc.GetCommit().GetMessage(),
			})
		}

		if resp.NextPage == 0 || len(all) >= c.commitCap {
			break
		}
		opts.Page = resp.NextPage
	}

	if len(all) > c.commitCap {
		all = all[:c.commitCap]
	}
	return all, nil
}

// RateLimit reports the most recently observed upstream quota. Both fields
// are null before the first upstream call.
func (c *Client) RateLimit() domain.RateLimitInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.RateLimitInfo{Remaining: c.remaining, Reset: c.reset}
}

// CheckRateLimit queries the quota endpoint directly.
func (c *Client) CheckRateLimit(ctx context.Context) (domain.RateLimitInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	limits, resp, err := c.gh.RateLimit.Get(ctx)
	c.record(resp)
	if err != nil {
		return domain.RateLimitInfo{}, fmt.Errorf("check rate limit: %w", classify(err))
	}

	core := limits.GetCore()
	remaining := core.Remaining
	reset := core.Reset.Unix()
	return domain.RateLimitInfo{Remaining: &remaining, Reset: &reset}, nil
}

func (c *Client) record(resp *github.Response) {
	if resp == nil {
		return
	}
	remaining := resp.Rate.Remaining
	reset := resp.Rate.Reset.Unix()

	c.mu.Lock()
	c.remaining = &remaining
	c.reset = &reset
	c.mu.Unlock()
}

func convertRepo(r *github.Repository) domain.Repository {
	return domain.Repository{
		ID:       r.GetID(),
		Name:     r.GetName(),
		FullName: r.GetFullName(),
		Private:  r.GetPrivate(),
		Owner: domain.RepoOwner{
			Login:     r.GetOwner().GetLogin(),
			AvatarURL: r.GetOwner().GetAvatarURL(),
		},
		HTMLURL:       r.GetHTMLURL(),
		Description:   r.Description,
		Fork:          r.GetFork(),
		CreatedAt:     r.GetCreatedAt().Time,
		UpdatedAt:     r.GetUpdatedAt().Time,
		PushedAt:      r.GetPushedAt().Time,
		Homepage:      r.Homepage,
		Size:          r.GetSize(),
		Stars:         r.GetStargazersCount(),
		Watchers:      r.GetWatchersCount(),
		Language:      r.Language,
		Forks:         r.GetForksCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		DefaultBranch: r.GetDefaultBranch(),
		Topics:        r.Topics,
	}
}

// classify maps upstream failures onto the port error taxonomy. Transport
// errors and timeouts pass through untouched.
func classify(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return port.ErrRateLimited
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return port.ErrRateLimited
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return port.ErrNotFound
		case http.StatusForbidden, http.StatusTooManyRequests:
			return port.ErrRateLimited
		default:
			return &port.UpstreamError{Status: ghErr.Response.StatusCode}
		}
	}
	return err
}

func isEmptyRepo(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) || ghErr.Response == nil {
		return false
	}
	code := ghErr.Response.StatusCode
	return code == http.StatusConflict || code == http.StatusNotFound
}
