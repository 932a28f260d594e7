package collab

import (
	"fmt"
	"sync"

	"github.com/deltaweave/deltaweave/pkg/delta"
)

// DefaultHistoryLimit bounds the in-memory change ring per Session,
// mirroring the teacher's EditSession.maxChangesBeforeSnapshot — a
// plain cap rather than a snapshot/Redis handoff, since durable
// storage is explicitly out of scope (see SPEC_FULL.md's pkg/collab
// Non-goals).
const DefaultHistoryLimit = 200

// historyEntry is one accepted change, recorded so a client proposing
// against an older version can be rebased forward.
type historyEntry struct {
	version int
	change  []delta.Op
}

// Session holds one collaboratively-edited document: its current
// content, a monotonically increasing version counter, and a ring of
// recent accepted changes. Grounded on the teacher's EditSession,
// generalized from a content string + recentChanges []interface{} to
// a delta.Delta document and []delta.Op history entries.
type Session struct {
	mu      sync.Mutex
	doc     delta.Delta
	version int
	history []historyEntry
	limit   int
	lookup  delta.HandlerLookup
}

// NewSession creates a session holding initial as version 0.
func NewSession(initial delta.Delta, lookup delta.HandlerLookup) *Session {
	return &Session{
		doc:    delta.Compact(append([]delta.Op(nil), initial...)),
		limit:  DefaultHistoryLimit,
		lookup: lookup,
	}
}

// Snapshot returns the current document and version.
func (s *Session) Snapshot() (delta.Delta, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(delta.Delta(nil), s.doc...), s.version
}

// Apply rebases change (proposed against baseVersion) against every
// change accepted since, then composes it onto the document. It
// returns the rebased change and the new version, so the caller can
// both update its own state and broadcast exactly what was applied.
//
// Grounded on the teacher's transform-then-apply client/server loop in
// pkg/ot/client.go, generalized to delta.Transform/delta.Compose.
func (s *Session) Apply(change []delta.Op, baseVersion int) ([]delta.Op, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if baseVersion < 0 || baseVersion > s.version {
		return nil, 0, fmt.Errorf("collab: base version %d out of range [0, %d]", baseVersion, s.version)
	}
	if oldest := s.version - len(s.history); baseVersion < oldest {
		return nil, 0, fmt.Errorf("collab: base version %d predates retained history (oldest %d); client must resync", baseVersion, oldest)
	}

	rebased := change
	for _, entry := range s.history {
		if entry.version <= baseVersion {
			continue
		}
		var err error
		rebased, err = delta.Transform(entry.change, rebased, false, s.lookup)
		if err != nil {
			return nil, 0, fmt.Errorf("collab: rebasing against version %d: %w", entry.version, err)
		}
	}

	composed, err := delta.Compose([]delta.Op(s.doc), rebased, s.lookup)
	if err != nil {
		return nil, 0, fmt.Errorf("collab: applying change: %w", err)
	}

	s.doc = delta.Compact(composed)
	s.version++
	s.history = append(s.history, historyEntry{version: s.version, change: rebased})
	if len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}

	return rebased, s.version, nil
}
