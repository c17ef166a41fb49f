package api

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/tambesec/networkstore/domain"
)

// refreshGate serializes session refreshes. Concurrent auth failures during
// one refresh window share exactly one refresh call: the first caller runs
// it, the rest park on the in-flight result and replay afterwards. The
// logging-out switch short-circuits the whole pipeline.
type refreshGate struct {
	mu         sync.Mutex
	loggingOut bool
	group      singleflight.Group
}

func newRefreshGate() *refreshGate {
	return &refreshGate{}
}

func (g *refreshGate) SetLoggingOut(v bool) {
	g.mu.Lock()
	g.loggingOut = v
	g.mu.Unlock()
}

func (g *refreshGate) LoggingOut() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loggingOut
}

// Refresh runs fn under single-flight. Callers arriving while a refresh is
// in flight block until it resolves and share its outcome.
func (g *refreshGate) Refresh(fn func() error) error {
	if g.LoggingOut() {
		return domain.ErrLoggingOut
	}
	_, err, _ := g.group.Do("session-refresh", func() (interface{}, error) {
		return nil, fn()
	})
	return err
}
