// Package apitest provides an in-memory stand-in for the draw backend,
// implementing the same REST contract the production client talks to:
// bearer-token auth plus per-collection listing with search, pagination,
// sorting, date bounds, CRUD and binary export. Tests drive it through
// httptest and assert on the requests it records.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Request is one recorded call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Auth   string
}

type forcedError struct {
	status  int
	message string
}

// Server is the fixture. Construct with New, point the client at URL(),
// and Close when done.
type Server struct {
	srv *httptest.Server

	mu          sync.Mutex
	email       string
	password    string
	token       string
	revoked     bool
	forced      []forcedError
	exportName  string
	requests    []Request
	collections map[string][]map[string]any
	nextID      int
}

// New starts the fixture with default credentials admin@example.com /
// admin123 and no collections. Seed registers collections.
func New() *Server {
	s := &Server{
		email:       "admin@example.com",
		password:    "admin123",
		token:       signToken("admin@example.com"),
		collections: map[string][]map[string]any{},
		nextID:      1000,
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Post("/auth/login", s.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/auth/validate", s.handleValidate)
		r.Route("/{collection}", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleCreate)
			r.Get("/export", s.handleExport)
			r.Get("/{id}", s.handleGet)
			r.Put("/{id}", s.handleUpdate)
			r.Delete("/{id}", s.handleDelete)
		})
	})

	s.srv = httptest.NewServer(r)
	return s
}

func (s *Server) Close()      { s.srv.Close() }
func (s *Server) URL() string { return s.srv.URL }

// SetCredentials replaces the accepted login pair.
func (s *Server) SetCredentials(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email, s.password = email, password
}

// Token returns the bearer token the fixture currently accepts.
func (s *Server) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// RevokeToken makes every authenticated request fail with 401 until the
// next successful login.
func (s *Server) RevokeToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked = true
}

// FailNext forces the next request to fail with the given status and
// message, whatever the endpoint. Stackable.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = append(s.forced, forcedError{status: status, message: message})
}

// ExportFilename makes export responses carry a Content-Disposition with
// the given name. An empty name reverts to a bare body.
func (s *Server) ExportFilename(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exportName = name
}

// Seed registers a collection under the given name and fills it. Items
// without an "id" get one assigned.
func (s *Server) Seed(collection string, items ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]map[string]any, 0, len(items))
	for _, it := range items {
		cp := map[string]any{}
		for k, v := range it {
			cp[k] = v
		}
		if _, ok := cp["id"]; !ok {
			cp["id"] = s.newIDLocked()
		}
		stored = append(stored, cp)
	}
	s.collections[collection] = stored
}

// Items returns a copy of a collection's current records.
func (s *Server) Items(collection string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.collections[collection]
	out := make([]map[string]any, len(items))
	for i, it := range items {
		cp := map[string]any{}
		for k, v := range it {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}

// Requests returns every recorded call in order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount counts recorded calls matching method and path.
func (s *Server) RequestCount(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) newIDLocked() string {
	s.nextID++
	return strconv.Itoa(s.nextID)
}

// record captures every request and applies forced failures.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Auth:   r.Header.Get("Authorization"),
		})
		var forced *forcedError
		if len(s.forced) > 0 {
			forced = &s.forced[0]
			s.forced = s.forced[1:]
		}
		s.mu.Unlock()

		if forced != nil {
			writeJSON(w, forced.status, map[string]any{"message": forced.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		ok := token != "" && token == s.token && !s.revoked
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed body"})
		return
	}

	s.mu.Lock()
	ok := creds.Email == s.email && creds.Password == s.password
	if ok {
		s.revoked = false
		s.token = signToken(creds.Email)
	}
	token := s.token
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (s *Server) handleValidate(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	items, ok := s.filtered(chi.URLParam(r, "collection"), r.URL.Query())
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "unknown collection"})
		return
	}

	q := r.URL.Query()
	if by := q.Get("orderBy"); by != "" {
		desc := q.Get("orderDirection") == "desc"
		sort.SliceStable(items, func(i, j int) bool {
			less := lessValues(items[i][by], items[j][by])
			if desc {
				return !less && !equalValues(items[i][by], items[j][by])
			}
			return less
		})
	}

	total := len(items)
	limit := atoiDefault(q.Get("limit"), 10)
	if limit < 1 {
		limit = 10
	}
	totalPages := (total + limit - 1) / limit
	page := atoiDefault(q.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": items[start:end],
		"pagination": map[string]any{
			"totalEntities": total,
			"totalPages":    totalPages,
			"currentPage":   page,
			"limit":         limit,
		},
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, _, ok := s.findLocked(chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed body"})
		return
	}

	s.mu.Lock()
	if _, ok := s.collections[name]; !ok {
		s.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "unknown collection"})
		return
	}
	payload["id"] = s.newIDLocked()
	s.collections[name] = append(s.collections[name], payload)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, payload)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed body"})
		return
	}

	s.mu.Lock()
	item, _, ok := s.findLocked(chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if !ok {
		s.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
		return
	}
	for k, v := range payload {
		if k == "id" {
			continue
		}
		item[k] = v
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")

	s.mu.Lock()
	_, idx, ok := s.findLocked(name, chi.URLParam(r, "id"))
	if !ok {
		s.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
		return
	}
	s.collections[name] = append(s.collections[name][:idx], s.collections[name][idx+1:]...)
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	items, ok := s.filtered(name, r.URL.Query())
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "unknown collection"})
		return
	}

	var b strings.Builder
	b.WriteString("id\n")
	for _, it := range items {
		fmt.Fprintf(&b, "%v\n", it["id"])
	}

	s.mu.Lock()
	exportName := s.exportName
	s.mu.Unlock()

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	w.Header().Set("Content-Type", "text/"+format)
	if exportName != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName))
	}
	_, _ = w.Write([]byte(b.String()))
}

// filtered returns the collection narrowed by the search and date
// parameters, as copies safe to sort and slice.
func (s *Server) filtered(name string, q url.Values) ([]map[string]any, bool) {
	s.mu.Lock()
	src, ok := s.collections[name]
	items := make([]map[string]any, len(src))
	copy(items, src)
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	if raw := q.Get("search"); raw != "" {
		var fields map[string]string
		if err := json.Unmarshal([]byte(raw), &fields); err == nil {
			items = filterItems(items, func(it map[string]any) bool {
				for field, want := range fields {
					have := strings.ToLower(fmt.Sprint(it[field]))
					if !strings.Contains(have, strings.ToLower(want)) {
						return false
					}
				}
				return true
			})
		}
	}
	if start := q.Get("startDate"); start != "" {
		items = filterItems(items, func(it map[string]any) bool {
			return itemDate(it) >= start
		})
	}
	if end := q.Get("endDate"); end != "" {
		items = filterItems(items, func(it map[string]any) bool {
			return itemDate(it) <= end
		})
	}
	return items, true
}

func (s *Server) findLocked(name, id string) (map[string]any, int, bool) {
	for i, it := range s.collections[name] {
		if fmt.Sprint(it["id"]) == id {
			return it, i, true
		}
	}
	return nil, 0, false
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func filterItems(items []map[string]any, keep func(map[string]any) bool) []map[string]any {
	out := items[:0:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// itemDate reduces a record's createdAt to its date part for range
// comparisons.
func itemDate(it map[string]any) string {
	raw := fmt.Sprint(it["createdAt"])
	if len(raw) >= 10 {
		return raw[:10]
	}
	return raw
}

func lessValues(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af < bf
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func equalValues(a, b any) bool {
	return !lessValues(a, b) && !lessValues(b, a)
}

// signToken issues a real HS256 token so claim decoding works against the
// fixture the same way it does in production.
func signToken(email string) string {
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   email,
		"email": email,
		"roles": []any{"admin"},
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}).SignedString([]byte("apitest-secret"))
	if err != nil {
		panic(err)
	}
	return token
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
