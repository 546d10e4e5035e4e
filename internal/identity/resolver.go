package identity

import "sync"

// DefaultDepartment labels staff the directory does not know
const DefaultDepartment = "General"

// StaffEntry is one directory row
type StaffEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// Resolver maps opaque staff ids to display names and department labels.
// Unknown ids resolve to the id itself with the default department, never
// an error, so display code stays simple.
type Resolver struct {
	mu    sync.RWMutex
	staff map[string]StaffEntry
}

// NewResolver builds a resolver over the built-in roster
func NewResolver() *Resolver {
	r := &Resolver{staff: make(map[string]StaffEntry, len(builtinRoster))}
	for _, entry := range builtinRoster {
		r.staff[entry.ID] = entry
	}
	return r
}

// Merge overlays directory entries on top of the current table. Used when
// a remote staff directory is configured; its rows win over the built-ins.
func (r *Resolver) Merge(entries []StaffEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range entries {
		if entry.ID == "" {
			continue
		}
		r.staff[entry.ID] = entry
	}
}

// ResolveStaff returns the display name and department for a staff id
func (r *Resolver) ResolveStaff(id string) (string, string) {
	r.mu.RLock()
	entry, ok := r.staff[id]
	r.mu.RUnlock()

	if !ok {
		return id, DefaultDepartment
	}
	return entry.Name, entry.Department
}

// Roster returns all known entries; used by the seeder
func (r *Resolver) Roster() []StaffEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]StaffEntry, 0, len(r.staff))
	for _, entry := range r.staff {
		entries = append(entries, entry)
	}
	return entries
}
