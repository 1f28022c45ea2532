package refs

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Status is an environment together with its presence on a remote.
type Status struct {
	Environment
	Remote bool `json:"remote"`
}

// RemoteStatus lists the environments and checks each one on remote
// concurrently. An empty remote selects the default remote.
func RemoteStatus(ctx context.Context, env *Env, remote string, push bool) ([]Status, error) {
	envs, err := env.List(ctx)
	if err != nil {
		return nil, err
	}

	// Resolve the default remote once so the parallel checks share it.
	if remote == "" {
		remote, _ = env.DefaultRemote(ctx)
	}

	statuses := make([]Status, len(envs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, e := range envs {
		statuses[i].Environment = e
		g.Go(func() error {
			statuses[i].Remote = env.RemoteExists(gctx, e.Name, remote, push)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return statuses, nil
}
