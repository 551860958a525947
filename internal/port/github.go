package port

import (
	"context"
	"time"

	"github.com/octolens/octolens/internal/domain"
)

// GitHubProvider abstracts the upstream GitHub REST API.
// Implementations handle pagination, fetch caps, and failure classification;
// they never retry.
type GitHubProvider interface {
	// FetchUser returns the public profile for a username.
	FetchUser(ctx context.Context, username string) (*domain.UserProfile, error)

	// FetchRepositories returns the user's owned repositories sorted by
	// most recent push, paginating up to the configured cap.
	FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error)

	// FetchLanguages returns one repository's language byte breakdown.
	FetchLanguages(ctx context.Context, owner, repo string) (domain.LanguageBytes, error)

	// FetchCommits returns commits authored since the given instant,
	// paginating up to the configured cap. Empty repositories yield an
	// empty slice, not an error.
	FetchCommits(ctx context.Context, owner, repo string, since time.Time) ([]domain.CommitRecord, error)

	// RateLimit reports the most recently observed upstream quota.
	RateLimit() domain.RateLimitInfo

	// CheckRateLimit queries the upstream quota endpoint directly.
	CheckRateLimit(ctx context.Context) (domain.RateLimitInfo, error)
}
