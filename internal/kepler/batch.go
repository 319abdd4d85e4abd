package kepler

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/orbiter/internal/orbit"
)

// Job is one independent propagation request.
type Job struct {
	State orbit.StateVector
	Mu    float64
	Dt    float64
}

// PropagateBatch runs jobs on up to workers goroutines (runtime.NumCPU() when
// workers <= 0). Results are returned in job order. The first failure cancels
// the remaining jobs and is returned.
func (p *Propagator) PropagateBatch(ctx context.Context, jobs []Job, workers int) ([]orbit.StateVector, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]orbit.StateVector, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := p.Propagate(job.State, job.Mu, job.Dt)
			if err != nil {
				return err
			}
			results[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Sample is a state at a time offset from the epoch state.
type Sample struct {
	T     float64
	State orbit.StateVector
}

// Trajectory samples the orbit through s at steps+1 evenly spaced times over
// [0, duration]. Each sample is propagated directly from s, so errors do not
// accumulate along the arc.
func (p *Propagator) Trajectory(ctx context.Context, s orbit.StateVector, mu, duration float64, steps, workers int) ([]Sample, error) {
	if steps < 1 {
		return nil, errInvalidf("trajectory needs at least 1 step, got %d", steps)
	}

	jobs := make([]Job, steps+1)
	for i := range jobs {
		jobs[i] = Job{State: s, Mu: mu, Dt: duration * float64(i) / float64(steps)}
	}

	states, err := p.PropagateBatch(ctx, jobs, workers)
	if err != nil {
		return nil, err
	}

	samples := make([]Sample, len(states))
	for i, st := range states {
		samples[i] = Sample{T: jobs[i].Dt, State: st}
	}
	return samples, nil
}
