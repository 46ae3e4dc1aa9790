package resource

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"
)

// SetFilter records a draft filter value. A blank value removes the field
// from the draft. Editing the draft never touches the network.
func (e *Engine[T]) SetFilter(field, value string) error {
	if !e.desc.searchable(field) {
		return fmt.Errorf("%w %q, searchable: %s",
			ErrUnknownField, field, strings.Join(e.desc.Search, ", "))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	value = strings.TrimSpace(value)
	if value == "" {
		delete(e.draft, field)
		return nil
	}
	e.draft[field] = value
	return nil
}

// HasUnappliedChanges reports whether the draft differs from the applied
// filters.
func (e *Engine[T]) HasUnappliedChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !maps.Equal(e.draft, e.applied)
}

// Filters returns copies of the draft and applied filter sets.
func (e *Engine[T]) Filters() (draft, applied map[string]string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.draft), maps.Clone(e.applied)
}

// ApplyFilters promotes the draft to the applied set, returns to the
// first page and fetches.
func (e *Engine[T]) ApplyFilters(ctx context.Context) error {
	e.mu.Lock()
	e.applied = maps.Clone(e.draft)
	e.page = 1
	e.mu.Unlock()
	return e.List(ctx)
}

// ClearFilters empties both filter copies and the date range at once,
// returns to the first page and fetches.
func (e *Engine[T]) ClearFilters(ctx context.Context) error {
	e.mu.Lock()
	e.draft = map[string]string{}
	e.applied = map[string]string{}
	e.startDate = ""
	e.endDate = ""
	e.page = 1
	e.mu.Unlock()
	return e.List(ctx)
}

// SetPage jumps to page n. Positions beyond the known page count are left
// for the server to clamp.
func (e *Engine[T]) SetPage(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrNoPage, n)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page = n
	return nil
}

// NextPage advances one page when one is known to exist.
func (e *Engine[T]) NextPage() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pages > 0 && e.page >= e.pages {
		return ErrNoPage
	}
	e.page++
	return nil
}

// PrevPage steps back one page.
func (e *Engine[T]) PrevPage() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.page <= 1 {
		return ErrNoPage
	}
	e.page--
	return nil
}

// SetLimit changes the page size and returns to the first page.
func (e *Engine[T]) SetLimit(n int) error {
	if n < 1 || n > 100 {
		return fmt.Errorf("limit must be between 1 and 100, got %d", n)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.limit = n
	e.page = 1
	return nil
}

// SetSort orders the listing by field. Direction is asc or desc, asc when
// empty; an empty field clears the ordering.
func (e *Engine[T]) SetSort(field, direction string) error {
	direction = strings.ToLower(strings.TrimSpace(direction))
	switch direction {
	case "":
		direction = "asc"
	case "asc", "desc":
	default:
		return fmt.Errorf("direction must be asc or desc, got %q", direction)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orderBy = strings.TrimSpace(field)
	if e.orderBy == "" {
		e.orderDir = ""
		return nil
	}
	e.orderDir = direction
	return nil
}

// SetDateRange bounds the listing between two dates in YYYY-MM-DD form.
// Empty strings clear the respective bound.
func (e *Engine[T]) SetDateRange(start, end string) error {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	for _, d := range []string{start, end} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("date %q must be in YYYY-MM-DD form", d)
		}
	}
	if start != "" && end != "" && start > end {
		return fmt.Errorf("start date %s is after end date %s", start, end)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startDate = start
	e.endDate = end
	return nil
}
