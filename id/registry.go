package id

import (
	"fmt"
	"strings"
	"sync"
)

const (
	DotSep   = "."
	ColonSep = "::"
)

// Registry maps Single ids back to the text they were hashed from.
// It is safe for concurrent use. The zero value is not usable; a nil
// *Registry reads as empty.
type Registry struct {
	mu    sync.Mutex
	names map[Id]string
}

func NewRegistry() *Registry {
	return &Registry{names: map[Id]string{}}
}

// Intern hashes text and records it. A *CollisionError is returned if a
// different text was recorded for the same id earlier; the earlier text is
// kept.
func (r *Registry) Intern(text string) (Id, error) {
	res := FromText(text)
	if err := r.Check(res, text); err != nil {
		return res, err
	}
	return res, nil
}

// MustIntern is Intern for callers treating collisions as fatal.
func (r *Registry) MustIntern(text string) Id {
	res, err := r.Intern(text)
	if err != nil {
		panic(err)
	}
	return res
}

// Check records text for i if i is a Single id with no recorded text, and
// reports a collision if a different text is recorded. A nil registry
// records nothing.
func (r *Registry) Check(i Id, text string) error {
	if r == nil || !i.IsSingle() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.names[i]
	if !ok {
		r.names[i] = text
		return nil
	}
	if stored != text {
		return &CollisionError{ID: i, Text: text, Stored: stored}
	}
	return nil
}

func (r *Registry) Text(i Id) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.names[i]
	return s, ok
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names)
}

// Merge copies the entries of other into r. Entries already present with a
// different text are left alone and reported; the first collision found is
// returned after all other entries have been merged.
func (r *Registry) Merge(other *Registry) error {
	if other == nil || other == r {
		return nil
	}
	other.mu.Lock()
	entries := make(map[Id]string, len(other.names))
	for k, v := range other.names {
		entries[k] = v
	}
	other.mu.Unlock()

	var first error
	for k, v := range entries {
		if err := r.Check(k, v); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Format renders i for diagnostics.
func (r *Registry) Format(i Id) string {
	switch v := i.Classify().(type) {
	case Multi:
		return fmt.Sprintf("MultiId %d %d", v.Index, v.Count)
	case Single:
		if s, ok := r.Text(i); ok {
			return s
		}
		return fmt.Sprintf("IdNotFound %x", uint64(i))
	case Number:
		return fmt.Sprintf("%d", v.Value)
	case NodePtr:
		return fmt.Sprintf("NodePtr{file:%d, level:%d, index:%d}", v.File, v.Ptr.Level, v.Ptr.Index)
	default:
		return "IdEmpty"
	}
}

// FormatPath renders i, joining the segments of a Multi id taken from pool
// with sep. Other ids render as with Format.
func (r *Registry) FormatPath(pool []Id, i Id, sep string) string {
	if !i.IsMulti() {
		return r.Format(i)
	}
	index, count := i.GetMulti()
	if index+count > len(pool) {
		return r.Format(i)
	}
	return r.JoinPath(pool[index:index+count], sep)
}

func (r *Registry) JoinPath(segs []Id, sep string) string {
	parts := make([]string, len(segs))
	for j, seg := range segs {
		parts[j] = r.Format(seg)
	}
	return strings.Join(parts, sep)
}

// ParsePath splits a dotted or colon separated path and interns each
// segment.
func (r *Registry) ParsePath(text string) ([]Id, error) {
	if text == "" {
		return nil, fmt.Errorf("empty path")
	}
	text = strings.ReplaceAll(text, ColonSep, DotSep)
	parts := strings.Split(text, DotSep)
	res := make([]Id, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("empty segment in path %q", text)
		}
		seg, err := r.Intern(part)
		if err != nil {
			return nil, err
		}
		res = append(res, seg)
	}
	return res, nil
}
