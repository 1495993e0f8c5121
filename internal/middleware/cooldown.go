package middleware

import (
	"context"
	"sync"
	"time"

	"server-warden/internal/command"
	"server-warden/pkg/cmd"

	"golang.org/x/time/rate"
)

const (
	// sweepInterval is how often the tracker prunes idle users.
	sweepInterval = 5 * time.Minute
	// idleTTL is how long a user must be quiet before their limiter is
	// dropped. Long past a full token refill, so dropping one never grants
	// extra invocations.
	idleTTL = 10 * time.Minute
)

// cooldownTracker hands out one token-bucket limiter per user and prunes
// limiters of users who have gone quiet, so the map stays bounded by the
// recently active user set.
type cooldownTracker struct {
	mu        sync.Mutex
	limiters  map[string]*userLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

type userLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newCooldownTracker(limit rate.Limit, burst int) *cooldownTracker {
	return &cooldownTracker{
		limiters:  make(map[string]*userLimiter),
		limit:     limit,
		burst:     burst,
		lastSweep: time.Now(),
	}
}

func (t *cooldownTracker) allow(userID string) bool {
	now := time.Now()

	t.mu.Lock()
	if now.Sub(t.lastSweep) > sweepInterval {
		t.sweep(now)
	}

	u, ok := t.limiters[userID]
	if !ok {
		u = &userLimiter{lim: rate.NewLimiter(t.limit, t.burst)}
		t.limiters[userID] = u
	}
	u.lastSeen = now
	t.mu.Unlock()

	return u.lim.Allow()
}

// sweep removes idle limiters. Caller holds the lock.
func (t *cooldownTracker) sweep(now time.Time) {
	for id, u := range t.limiters {
		if now.Sub(u.lastSeen) > idleTTL {
			delete(t.limiters, id)
		}
	}
	t.lastSweep = now
}

// WithCooldown rate-limits command invocations per user: a burst of three,
// refilling one every two seconds. Excess invocations get an ephemeral
// notice and the command is not run.
func WithCooldown() cmd.Middleware {
	tracker := newCooldownTracker(rate.Every(2*time.Second), 3)
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			slash, ok := inv.Data.(*command.SlashInteractionContext)
			if !ok {
				return c.Run(ctx, inv)
			}

			userID := ""
			if slash.Event.Member != nil && slash.Event.Member.User != nil {
				userID = slash.Event.Member.User.ID
			} else if slash.Event.User != nil {
				userID = slash.Event.User.ID
			}
			if userID == "" || tracker.allow(userID) {
				return c.Run(ctx, inv)
			}

			return respondEphemeralNotice(slash, "Slow down! You are running commands too quickly.")
		})
	}
}
