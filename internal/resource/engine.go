package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/drawlabs/luckyadmin/internal/api"
	"github.com/drawlabs/luckyadmin/internal/logging"
	"github.com/drawlabs/luckyadmin/internal/notify"
)

// API is the transport slice the engine needs.
type API interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
	PostJSON(ctx context.Context, path string, body, out any) error
	PutJSON(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
	GetBinary(ctx context.Context, path string, query url.Values) (*api.Download, error)
}

// Options carries the collaborators shared by every engine.
type Options struct {
	Client      API
	Notifier    notify.Notifier
	Log         logging.Logger
	DownloadDir string
	// PageLimit is the initial page size; 10 when zero.
	PageLimit int
}

// Snapshot is a copy of an engine's list state at one point in time.
type Snapshot[T any] struct {
	Items       []T
	TotalCount  int
	CurrentPage int
	TotalPages  int
	Limit       int
	Loading     bool
	Err         string
}

// Engine drives one collection: list state, the draft/applied filter
// model, CRUD and export. Methods are safe for concurrent use. Writes
// follow last-write-wins, which matches a single operator issuing one
// command at a time.
type Engine[T any] struct {
	desc        Descriptor
	client      API
	notifier    notify.Notifier
	log         logging.Logger
	downloadDir string

	mu        sync.Mutex
	items     []T
	total     int
	page      int
	pages     int
	limit     int
	loading   bool
	lastErr   string
	draft     map[string]string
	applied   map[string]string
	startDate string
	endDate   string
	orderBy   string
	orderDir  string
}

// NewEngine builds the engine for one descriptor.
func NewEngine[T any](desc Descriptor, opts Options) *Engine[T] {
	limit := opts.PageLimit
	if limit <= 0 {
		limit = 10
	}
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}
	return &Engine[T]{
		desc:        desc,
		client:      opts.Client,
		notifier:    opts.Notifier,
		log:         log,
		downloadDir: opts.DownloadDir,
		page:        1,
		limit:       limit,
		draft:       map[string]string{},
		applied:     map[string]string{},
	}
}

// Descriptor returns the descriptor the engine was built from.
func (e *Engine[T]) Descriptor() Descriptor { return e.desc }

// List fetches the current page with the applied filters.
func (e *Engine[T]) List(ctx context.Context) error {
	e.mu.Lock()
	e.loading = true
	e.lastErr = ""
	query := e.listQueryLocked()
	e.mu.Unlock()

	var env api.ListEnvelope[T]
	err := e.client.GetJSON(ctx, e.desc.Path, query, &env)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false
	if err != nil {
		e.lastErr = userMessage(err)
		e.notifier.Error(fmt.Sprintf("could not load %s: %s", e.desc.Name, e.lastErr))
		return err
	}
	e.items = env.Data
	e.total = env.Pagination.TotalEntities
	e.pages = env.Pagination.TotalPages
	// The envelope is authoritative for the position the server actually
	// served.
	if env.Pagination.CurrentPage > 0 {
		e.page = env.Pagination.CurrentPage
	}
	if env.Pagination.Limit > 0 {
		e.limit = env.Pagination.Limit
	}
	return nil
}

// Get fetches a single record. api.ErrNotFound covers both a 404 and a
// success with an empty body, so the caller can render a proper missing
// state instead of an error banner.
func (e *Engine[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	if err := e.client.GetJSON(ctx, e.itemPath(id), nil, &item); err != nil {
		if !errors.Is(err, api.ErrNotFound) {
			e.fail(fmt.Sprintf("could not load %s record", e.desc.Name), err)
		}
		var zero T
		return zero, err
	}
	return item, nil
}

// Create posts a new record. The payload is a partial entity, typically
// the field map assembled by the form flow. Immutable entities fail
// locally, before any request is made.
func (e *Engine[T]) Create(ctx context.Context, payload any) (T, error) {
	var created T
	if e.desc.Immutable {
		return created, ErrImmutable
	}
	if err := e.client.PostJSON(ctx, e.desc.Path, payload, &created); err != nil {
		e.fail("create failed", err)
		var zero T
		return zero, err
	}
	e.notifier.Success(e.desc.Name + ": record created")
	return created, nil
}

// Update puts a partial entity over an existing record. Immutable
// entities fail locally, before any request is made.
func (e *Engine[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var zero T
	if e.desc.Immutable {
		return zero, ErrImmutable
	}
	var updated T
	if err := e.client.PutJSON(ctx, e.itemPath(id), payload, &updated); err != nil {
		e.fail("update failed", err)
		return zero, err
	}
	e.notifier.Success(e.desc.Name + ": record updated")
	return updated, nil
}

// Delete removes a record, then refreshes the listing. When the deleted
// row was the only one on a page past the first, the previous page is
// fetched instead, so the operator never lands on an empty page.
func (e *Engine[T]) Delete(ctx context.Context, id string) error {
	if e.desc.Immutable {
		return ErrImmutable
	}
	if err := e.client.Delete(ctx, e.itemPath(id)); err != nil {
		e.fail("delete failed", err)
		return err
	}
	e.notifier.Success(e.desc.Name + ": record deleted")

	e.mu.Lock()
	if e.page > 1 && len(e.items) == 1 {
		e.page--
	}
	e.mu.Unlock()

	if err := e.List(ctx); err != nil {
		e.log.Warn(ctx, "refreshing after delete", "entity", e.desc.Name, "error", err)
	}
	return nil
}

// Snapshot returns a copy of the list state.
func (e *Engine[T]) Snapshot() Snapshot[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	items := make([]T, len(e.items))
	copy(items, e.items)
	return Snapshot[T]{
		Items:       items,
		TotalCount:  e.total,
		CurrentPage: e.page,
		TotalPages:  e.pages,
		Limit:       e.limit,
		Loading:     e.loading,
		Err:         e.lastErr,
	}
}

func (e *Engine[T]) itemPath(id string) string {
	return e.desc.Path + "/" + url.PathEscape(id)
}

// fail records the error on the list state and tells the operator once.
func (e *Engine[T]) fail(op string, err error) {
	msg := userMessage(err)
	e.mu.Lock()
	e.lastErr = msg
	e.mu.Unlock()
	e.notifier.Error(op + ": " + msg)
}

// listQueryLocked builds the query for the current page. Callers hold the
// mutex.
func (e *Engine[T]) listQueryLocked() url.Values {
	q := e.filterQueryLocked()
	q.Set("page", strconv.Itoa(e.page))
	q.Set("limit", strconv.Itoa(e.limit))
	if e.orderBy != "" {
		q.Set("orderBy", e.orderBy)
		q.Set("orderDirection", e.orderDir)
	}
	return q
}

// filterQueryLocked carries what listing and export share: the applied
// search fields under one JSON-encoded "search" parameter, plus the date
// bounds. Blank values are stripped, never sent as empty parameters.
func (e *Engine[T]) filterQueryLocked() url.Values {
	q := url.Values{}
	search := make(map[string]string, len(e.applied))
	for field, value := range e.applied {
		if v := strings.TrimSpace(value); v != "" {
			search[field] = v
		}
	}
	if len(search) > 0 {
		encoded, _ := json.Marshal(search)
		q.Set("search", string(encoded))
	}
	if e.startDate != "" {
		q.Set("startDate", e.startDate)
	}
	if e.endDate != "" {
		q.Set("endDate", e.endDate)
	}
	return q
}

// userMessage folds transport errors down to something worth showing.
func userMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		return "server unavailable"
	case errors.Is(err, api.ErrUnauthorized):
		return "not authorized"
	case errors.Is(err, api.ErrNotFound):
		return "not found"
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
