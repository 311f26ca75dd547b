// Package params holds the parameters used to initialize a 3-D Secure 2
// client SDK.
//
// Parameters is a grouped key/value store. Every key lives in a Group;
// accessors without an explicit group use DefaultGroup. Nothing in this
// package validates values or returns errors: a missing key or group reads
// as absent, and setting None removes a key.
//
// A Parameters value is not safe for concurrent use. Callers sharing one
// across goroutines must guard it themselves.
package params

import "sort"

// Group names a namespace inside Parameters.
type Group string

// DefaultGroup is the group used when no group is given.
const DefaultGroup Group = ""

// Parameters is a two-level map of group -> key -> value.
// The zero value is empty and ready to use.
type Parameters struct {
	groups map[Group]map[string]string
}

// New returns an empty Parameters.
func New() *Parameters {
	return &Parameters{groups: make(map[Group]map[string]string)}
}

// Get returns the value for key in the default group and whether it was set.
func (p *Parameters) Get(key string) (string, bool) {
	return p.GetIn(key, DefaultGroup)
}

// GetIn returns the value for key in group and whether it was set.
// A group that was never written reads like an empty group.
func (p *Parameters) GetIn(key string, group Group) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.groups[group][key]
	return v, ok
}

// Set sets key in the default group. Setting None removes the key.
func (p *Parameters) Set(key string, v Value) {
	p.SetIn(key, v, DefaultGroup)
}

// SetIn sets key in group, creating the group on first write.
// Setting None removes the key; a group left empty is dropped.
func (p *Parameters) SetIn(key string, v Value, group Group) {
	s, ok := v.Get()
	if !ok {
		if p == nil {
			return
		}
		entries, exists := p.groups[group]
		if !exists {
			return
		}
		delete(entries, key)
		if len(entries) == 0 {
			delete(p.groups, group)
		}
		return
	}

	if p.groups == nil {
		p.groups = make(map[Group]map[string]string)
	}
	entries, exists := p.groups[group]
	if !exists {
		entries = make(map[string]string)
		p.groups[group] = entries
	}
	entries[key] = s
}

// Remove removes key from the default group. Removing an absent key is a no-op.
func (p *Parameters) Remove(key string) {
	p.SetIn(key, None(), DefaultGroup)
}

// RemoveIn removes key from group. Removing an absent key is a no-op.
func (p *Parameters) RemoveIn(key string, group Group) {
	p.SetIn(key, None(), group)
}

// ClearGroup removes every key in group.
func (p *Parameters) ClearGroup(group Group) {
	if p == nil {
		return
	}
	delete(p.groups, group)
}

// Groups returns the groups holding at least one key, sorted, with the
// default group first.
func (p *Parameters) Groups() []Group {
	if p == nil {
		return nil
	}
	groups := make([]Group, 0, len(p.groups))
	for g := range p.groups {
		groups = append(groups, g)
	}
	// DefaultGroup is "" so it sorts first.
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })
	return groups
}

// Keys returns the sorted keys of group.
func (p *Parameters) Keys(group Group) []string {
	if p == nil {
		return nil
	}
	entries := p.groups[group]
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Group returns a copy of the entries in group. The result is never nil.
func (p *Parameters) Group(group Group) map[string]string {
	out := make(map[string]string)
	if p == nil {
		return out
	}
	for k, v := range p.groups[group] {
		out[k] = v
	}
	return out
}

// All returns a deep copy of every non-empty group.
func (p *Parameters) All() map[Group]map[string]string {
	out := make(map[Group]map[string]string)
	if p == nil {
		return out
	}
	for g := range p.groups {
		out[g] = p.Group(g)
	}
	return out
}

// Len returns the number of entries across all groups.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, entries := range p.groups {
		n += len(entries)
	}
	return n
}

// Clone returns a deep copy of p.
func (p *Parameters) Clone() *Parameters {
	c := New()
	c.Merge(p)
	return c
}

// Merge copies every entry of other into p. Entries in other win.
func (p *Parameters) Merge(other *Parameters) {
	if other == nil {
		return
	}
	for g, entries := range other.groups {
		for k, v := range entries {
			p.SetIn(k, Some(v), g)
		}
	}
}
