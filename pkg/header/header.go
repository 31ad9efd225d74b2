// Package header provides an ordered collection of HTTP header pairs with
// case-insensitive names and functional updates. A Store is never mutated in
// place: Put and Delete return a new Store, leaving the receiver usable by
// any code still holding it.
package header

import "strings"

// Pair is a single header name/value entry. Name keeps the casing it was
// first inserted with; comparisons are case-insensitive.
type Pair struct {
	Name  string
	Value string
}

// Store holds header pairs in insertion order.
type Store struct {
	entries []Pair
}

// New builds a Store from the given pairs, applying Put semantics in order
// so duplicate names collapse to the last value.
func New(pairs ...Pair) *Store {
	s := &Store{}
	for _, p := range pairs {
		s = s.Put(p.Name, p.Value)
	}
	return s
}

// FromPairs builds a Store that preserves the given pairs verbatim,
// including duplicates. Used when mirroring an already-parsed wire header
// block where duplicate names are legitimate (e.g. repeated cookie lines).
func FromPairs(pairs []Pair) *Store {
	s := &Store{entries: make([]Pair, len(pairs))}
	copy(s.entries, pairs)
	return s
}

// Get returns the value for name, matched case-insensitively. The second
// return is false when the name is absent. With duplicate entries the first
// occurrence wins, matching common request-header lookup behavior.
func (s *Store) Get(name string) (string, bool) {
	for _, p := range s.entries {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// Put returns a new Store with name set to value. If a case-insensitively
// equal name already exists, its value is replaced at the same position and
// with its original casing, so the collection's length and ordering do not
// change. Otherwise the pair is appended.
func (s *Store) Put(name, value string) *Store {
	out := &Store{entries: make([]Pair, len(s.entries), len(s.entries)+1)}
	copy(out.entries, s.entries)
	for i, p := range out.entries {
		if strings.EqualFold(p.Name, name) {
			out.entries[i].Value = value
			return out
		}
	}
	out.entries = append(out.entries, Pair{Name: name, Value: value})
	return out
}

// Append returns a new Store with the pair added unconditionally, even if an
// equal name already exists. Needed for response headers that repeat by
// design, such as set-cookie.
func (s *Store) Append(name, value string) *Store {
	out := &Store{entries: make([]Pair, len(s.entries), len(s.entries)+1)}
	copy(out.entries, s.entries)
	out.entries = append(out.entries, Pair{Name: name, Value: value})
	return out
}

// Delete returns a new Store with every entry matching name removed.
// Deleting an absent name returns an equivalent Store.
func (s *Store) Delete(name string) *Store {
	out := &Store{entries: make([]Pair, 0, len(s.entries))}
	for _, p := range s.entries {
		if strings.EqualFold(p.Name, name) {
			continue
		}
		out.entries = append(out.entries, p)
	}
	return out
}

// Len reports the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Pairs returns the entries in insertion order. The slice is a copy; callers
// may not reach the Store's internal state through it.
func (s *Store) Pairs() []Pair {
	out := make([]Pair, len(s.entries))
	copy(out, s.entries)
	return out
}

// Each calls f for every entry in insertion order.
func (s *Store) Each(f func(Pair)) {
	for _, p := range s.entries {
		f(p)
	}
}
