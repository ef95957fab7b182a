package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskmeter/taskmeter/packages/api"
)

const (
	// DefaultTimeout bounds polling for a whole batch of tasks
	DefaultTimeout = 7200 * time.Second
	// DefaultStep is the pause between polls of a not-yet-terminal task
	DefaultStep = 3 * time.Second
)

// Poller waits for service tasks to reach a terminal state.
type Poller struct {
	client   *api.Client
	timeout  time.Duration
	step     time.Duration
	validate bool
}

type PollerOption func(*Poller)

func NewPoller(client *api.Client, opts ...PollerOption) *Poller {
	p := &Poller{
		client:  client,
		timeout: DefaultTimeout,
		step:    DefaultStep,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithTimeout sets the whole-batch polling budget
func WithTimeout(d time.Duration) PollerOption {
	return func(p *Poller) {
		p.timeout = d
	}
}

// WithStep sets the pause between polls
func WithStep(d time.Duration) PollerOption {
	return func(p *Poller) {
		p.step = d
	}
}

// WithValidation makes every polled payload go through schema validation
func WithValidation(v bool) PollerOption {
	return func(p *Poller) {
		p.validate = v
	}
}

// WaitForTasks polls each task href until it reaches a terminal state,
// returning one result per input in input order. The deadline covers the
// whole batch and is measured once at the start, so hrefs late in the
// sequence inherit whatever budget is left. A task that is not terminal by
// the deadline yields a nil entry; callers must check for it. Any transport
// or non-2xx error aborts the batch immediately.
func (p *Poller) WaitForTasks(ctx context.Context, hrefs []string) ([]*Task, error) {
	deadline := time.Now().Add(p.timeout)
	out := make([]*Task, 0, len(hrefs))

	for _, href := range hrefs {
		for {
			if !time.Now().Before(deadline) {
				slog.Debug("polling budget exhausted", "href", href)
				out = append(out, nil)
				break
			}

			resp, err := p.client.Get(ctx, href, nil)
			if err != nil {
				return nil, err
			}

			if p.validate {
				if err := ValidateTask(resp.Body); err != nil {
					return nil, err
				}
			}

			task := FromJSON(resp.Body)
			if IsTerminal(task.State) {
				slog.Debug("task finished", "href", href, "state", task.State)
				out = append(out, task)
				break
			}

			slog.Debug("task still running", "href", href, "state", task.State)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.step):
			}
		}
	}

	return out, nil
}
