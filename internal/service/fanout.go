package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/octolens/octolens/internal/domain"
)

// fanOut issues one fetch per repository, all concurrently, and folds only
// the successes into a map keyed by repository name. Each fetch is
// fault-isolated: a failure is logged and the repository omitted, siblings
// keep running. No two tasks ever write the same key, so the mutex only
// guards the map structure itself.
func fanOut[T any](ctx context.Context, repos []domain.Repository, what string, fetch func(ctx context.Context, repo domain.Repository) (T, error)) map[string]T {
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	out := make(map[string]T, len(repos))

	for _, repo := range repos {
		wg.Add(1)
		go func(repo domain.Repository) {
			defer wg.Done()

			v, err := fetch(ctx, repo)
			if err != nil {
				slog.Warn("fan-out fetch failed", "what", what, "repo", repo.Name, "error", err)
				return
			}

			mu.Lock()
			out[repo.Name] = v
			mu.Unlock()
		}(repo)
	}

	wg.Wait()
	return out
}
