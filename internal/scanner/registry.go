package scanner

import "sync"

// Registry tracks which group chats are opted into scanning. It gates
// both live ingestion and historical scans, and works whether or not
// the transport is connected.
type Registry struct {
	mu     sync.RWMutex
	groups map[string]bool
}

// NewRegistry creates an empty registry; no group is active by default.
func NewRegistry() *Registry {
	return &Registry{groups: make(map[string]bool)}
}

// SetActive records the activation state for a group. Idempotent.
// Deactivation does not purge listings already detected from the group.
func (r *Registry) SetActive(groupID string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[groupID] = active
}

// IsActive reports whether a group is opted into scanning.
func (r *Registry) IsActive(groupID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.groups[groupID]
}

// ActiveIDs returns a snapshot of the currently active group IDs.
func (r *Registry) ActiveIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.groups))
	for id, active := range r.groups {
		if active {
			ids = append(ids, id)
		}
	}
	return ids
}
