// Package coordinator implements the counting rendezvous that orders
// concurrent assertion failures: no participant terminates the process until
// every goroutine that registered a failure has finished writing its
// diagnostic.
//
// This is not a classic barrier. The participant set is open: any goroutine
// may register at any time, and a registrant only waits for goroutines that
// registered before or concurrently with its own arrival. A late registrant
// simply raises the unresolved count, extending every current waiter, which
// is the required behavior: a diagnostic that starts after another has begun
// waiting must still be flushed before anyone aborts.
package coordinator

import (
	"fmt"
	"sync"
	"time"

	"github.com/LerianStudio/lib-invariants/failure"
)

// Coordinator holds the process-wide rendezvous state: the unresolved count,
// its mutex, and the condition used to wake waiters.
//
// The unresolved count equals the number of goroutines currently between
// Register and Deregister, and only ever changes under the mutex. A
// Coordinator is never torn down; the process dies before teardown matters.
type Coordinator struct {
	mu         sync.Mutex
	cond       *sync.Cond
	unresolved int
}

// New returns a coordinator with no registrants.
func New() *Coordinator {
	c := &Coordinator{}
	c.cond = sync.NewCond(&c.mu)

	return c
}

// Register announces that the calling goroutine is about to produce a
// diagnostic and that the process must not terminate until it deregisters.
func (c *Coordinator) Register() {
	c.mu.Lock()
	c.unresolved++
	c.mu.Unlock()
}

// Deregister resolves the calling goroutine's registration. When the caller
// observes itself as the last outstanding registrant it wakes every waiter
// first, then decrements; the wake is a liveness aid, correctness rests on
// the predicate re-check in Wait.
//
// Deregistering without a matching Register is a protocol violation and
// returns failure.ErrSync: a miscounted rendezvous can no longer be trusted.
func (c *Coordinator) Deregister() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unresolved == 0 {
		return fmt.Errorf("%w: deregister without registration", failure.ErrSync)
	}

	if c.unresolved == 1 {
		c.cond.Broadcast()
	}

	c.unresolved--

	return nil
}

// Wait blocks the calling goroutine until the unresolved count reaches zero,
// re-checking the predicate on every wake. A goroutine that has already
// deregistered calls Wait before terminating the process, so it cannot abort
// while a sibling's diagnostic is still in flight.
//
// With timeout zero the wait is unbounded, matching the historical behavior.
// A positive timeout bounds the wait and returns failure.ErrSync on expiry,
// letting the caller force a fallback termination instead of hanging forever
// behind a registrant that died without deregistering.
func (c *Coordinator) Wait(timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timeout <= 0 {
		for c.unresolved > 0 {
			c.cond.Wait()
		}

		return nil
	}

	expired := false
	timer := time.AfterFunc(timeout, func() {
		c.mu.Lock()
		expired = true
		c.mu.Unlock()
		c.cond.Broadcast()
	})
	defer timer.Stop()

	for c.unresolved > 0 {
		if expired {
			return fmt.Errorf("%w: rendezvous wait expired after %v with %d unresolved", failure.ErrSync, timeout, c.unresolved)
		}

		c.cond.Wait()
	}

	return nil
}

// Unresolved reports the number of goroutines currently between Register and
// Deregister.
func (c *Coordinator) Unresolved() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.unresolved
}
