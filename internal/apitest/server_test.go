package apitest

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawlabs/luckyadmin/internal/api"
)

type tokenHolder struct{ tok string }

func (h *tokenHolder) Token() string { return h.tok }

func newClient(t *testing.T, s *Server) (*api.HTTPClient, *tokenHolder) {
	t.Helper()
	c, err := api.NewHTTPClient(s.URL(), 2*time.Second, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	holder := &tokenHolder{}
	c.BindSession(holder, nil)
	return c, holder
}

func TestServer_AuthFlow(t *testing.T) {
	s := New()
	defer s.Close()
	c, holder := newClient(t, s)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin@example.com", "nope")
	require.ErrorIs(t, err, api.ErrInvalidCredentials)

	token, err := c.Login(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	holder.tok = token

	require.NoError(t, c.Validate(ctx))

	s.RevokeToken()
	require.ErrorIs(t, c.Validate(ctx), api.ErrUnauthorized)
}

func TestServer_CollectionLifecycle(t *testing.T) {
	s := New()
	defer s.Close()
	s.Seed("clients",
		map[string]any{"name": "Ana Souza", "cpf": "111", "createdAt": "2026-01-05T10:00:00Z"},
		map[string]any{"name": "Bruno Lima", "cpf": "222", "createdAt": "2026-02-05T10:00:00Z"},
		map[string]any{"name": "Carla Dias", "cpf": "333", "createdAt": "2026-03-05T10:00:00Z"},
	)

	c, holder := newClient(t, s)
	ctx := context.Background()
	holder.tok = s.Token()

	type client struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		CPF  string `json:"cpf"`
	}

	t.Run("search narrows the set", func(t *testing.T) {
		var env api.ListEnvelope[client]
		q := url.Values{"search": {`{"name":"ana"}`}, "page": {"1"}, "limit": {"10"}}
		require.NoError(t, c.GetJSON(ctx, "/clients", q, &env))
		require.Len(t, env.Data, 1)
		assert.Equal(t, "Ana Souza", env.Data[0].Name)
		assert.Equal(t, 1, env.Pagination.TotalEntities)
	})

	t.Run("date range filters on createdAt", func(t *testing.T) {
		var env api.ListEnvelope[client]
		q := url.Values{"startDate": {"2026-02-01"}, "endDate": {"2026-02-28"}}
		require.NoError(t, c.GetJSON(ctx, "/clients", q, &env))
		require.Len(t, env.Data, 1)
		assert.Equal(t, "Bruno Lima", env.Data[0].Name)
	})

	t.Run("sort and pagination", func(t *testing.T) {
		var env api.ListEnvelope[client]
		q := url.Values{"orderBy": {"name"}, "orderDirection": {"desc"}, "page": {"2"}, "limit": {"1"}}
		require.NoError(t, c.GetJSON(ctx, "/clients", q, &env))
		require.Len(t, env.Data, 1)
		assert.Equal(t, "Bruno Lima", env.Data[0].Name, "second page of a descending sort")
		assert.Equal(t, 3, env.Pagination.TotalPages)
		assert.Equal(t, 2, env.Pagination.CurrentPage)
	})

	t.Run("create update delete", func(t *testing.T) {
		var created client
		require.NoError(t, c.PostJSON(ctx, "/clients", map[string]any{"name": "Davi Reis", "cpf": "444"}, &created))
		require.NotEmpty(t, created.ID)

		var updated client
		require.NoError(t, c.PutJSON(ctx, "/clients/"+created.ID, map[string]any{"name": "Davi R."}, &updated))
		assert.Equal(t, "Davi R.", updated.Name)
		assert.Equal(t, "444", updated.CPF, "untouched fields survive a partial update")

		require.NoError(t, c.Delete(ctx, "/clients/"+created.ID))
		var missing client
		require.ErrorIs(t, c.GetJSON(ctx, "/clients/"+created.ID, nil, &missing), api.ErrNotFound)
	})

	t.Run("export respects filters", func(t *testing.T) {
		s.ExportFilename("clients_jan.csv")
		q := url.Values{"search": {`{"name":"ana"}`}, "format": {"csv"}}
		d, err := c.GetBinary(ctx, "/clients/export", q)
		require.NoError(t, err)
		assert.Equal(t, "clients_jan.csv", d.Filename)
		assert.Equal(t, "id\n"+s.Items("clients")[0]["id"].(string)+"\n", string(d.Data))
	})
}

func TestServer_ForcedFailure(t *testing.T) {
	s := New()
	defer s.Close()
	s.Seed("clients")
	c, holder := newClient(t, s)
	holder.tok = s.Token()

	s.FailNext(http.StatusInternalServerError, "database down")

	err := c.GetJSON(context.Background(), "/clients", nil, nil)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "database down", apiErr.Message)

	require.NoError(t, c.GetJSON(context.Background(), "/clients", nil, nil), "failure is one-shot")
}

func TestServer_RecordsRequests(t *testing.T) {
	s := New()
	defer s.Close()
	s.Seed("clients")
	c, holder := newClient(t, s)
	holder.tok = s.Token()

	require.NoError(t, c.GetJSON(context.Background(), "/clients", url.Values{"page": {"2"}}, nil))

	assert.Equal(t, 1, s.RequestCount(http.MethodGet, "/clients"))
	reqs := s.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, "2", last.Query.Get("page"))
	assert.Equal(t, "Bearer "+s.Token(), last.Auth)
}
