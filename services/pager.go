package services

import (
	"sync"
	"time"
)

const (
	// ItemsPerPage is the fixed customer page size.
	ItemsPerPage = 6
	// FlipDelay is how long a page turn stays in the flipping state.
	FlipDelay = 400 * time.Millisecond
)

// TotalPages is ceil(n/size).
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns page (0-based) of items. Out-of-range pages are empty.
func Paginate[T any](items []T, page, size int) []T {
	if page < 0 || size <= 0 {
		return nil
	}
	start := page * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Flipper holds the current page and the transient flipping flag.
// FlipTo sets the flag, waits the delay, then moves to the target page and
// clears the flag. Requests that arrive while flipping are ignored; there
// is no cancellation.
type Flipper struct {
	mu       sync.Mutex
	page     int
	total    int
	flipping bool
	delay    time.Duration

	// OnSettled, when set, is called after each completed flip with the new
	// page, outside the lock.
	OnSettled func(page int)
}

func NewFlipper(total int, delay time.Duration) *Flipper {
	return &Flipper{total: total, delay: delay}
}

func (f *Flipper) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

func (f *Flipper) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

func (f *Flipper) Flipping() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flipping
}

// SetTotal updates the page count after a reload and clamps the current
// page into range.
func (f *Flipper) SetTotal(total int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total = total
	if f.page >= total {
		f.page = max(total-1, 0)
	}
}

// FlipTo reports whether a flip was started.
func (f *Flipper) FlipTo(target int) bool {
	f.mu.Lock()
	if f.flipping || target == f.page || target < 0 || target >= f.total {
		f.mu.Unlock()
		return false
	}
	f.flipping = true
	f.mu.Unlock()

	time.AfterFunc(f.delay, func() {
		f.mu.Lock()
		f.page = target
		f.flipping = false
		cb := f.OnSettled
		f.mu.Unlock()
		if cb != nil {
			cb(target)
		}
	})
	return true
}

func (f *Flipper) Next() bool { return f.FlipTo(f.Page() + 1) }
func (f *Flipper) Prev() bool { return f.FlipTo(f.Page() - 1) }
