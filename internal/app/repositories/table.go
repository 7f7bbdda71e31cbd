package repositories

import (
	"strconv"
	"sync"
)

// table is an insertion-ordered in-memory collection keyed by a numeric id.
// setID writes the stringified id back into the stored record.
type table[T any] struct {
	mu     sync.RWMutex
	nextID int64
	order  []int64
	rows   map[int64]T
	setID  func(*T, string)
}

func newTable[T any](setID func(*T, string)) *table[T] {
	return &table[T]{rows: make(map[int64]T), setID: setID}
}

func (t *table[T]) insertLocked(rec T) int64 {
	t.nextID++
	id := t.nextID
	t.setID(&rec, strconv.FormatInt(id, 10))
	t.rows[id] = rec
	t.order = append(t.order, id)
	return id
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.rows[id]
	return rec, ok
}

func (t *table[T]) all() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.allLocked()
}

func (t *table[T]) allLocked() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

// findLocked returns the id of the first record accepted by match, or 0.
func (t *table[T]) findLocked(match func(T) bool) int64 {
	for _, id := range t.order {
		if match(t.rows[id]) {
			return id
		}
	}
	return 0
}

func (t *table[T]) replaceLocked(id int64, rec T) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.setID(&rec, strconv.FormatInt(id, 10))
	t.rows[id] = rec
	return true
}

func (t *table[T]) removeLocked(id int64) (T, bool) {
	rec, ok := t.rows[id]
	if !ok {
		return rec, false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return rec, true
}

func (t *table[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}
