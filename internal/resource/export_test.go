package resource

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawlabs/luckyadmin/internal/api"
	"github.com/drawlabs/luckyadmin/internal/notify"
)

func newExportEngine(t *testing.T, client *fakeAPI) (*Engine[item], *notify.Recorder, string) {
	t.Helper()
	dir := t.TempDir()
	rec := notify.NewRecorder()
	e := NewEngine[item](widgetsDesc, Options{
		Client:      client,
		Notifier:    rec,
		DownloadDir: dir,
		PageLimit:   10,
	})
	return e, rec, dir
}

func TestEngine_Export_DefaultFormat(t *testing.T) {
	payload := []byte("id,name\n1,ana\n")
	client := &fakeAPI{getBinaryFn: func(path string, query url.Values) (*api.Download, error) {
		require.Equal(t, "/widgets/export", path)
		require.Equal(t, "csv", query.Get("format"))
		return &api.Download{ContentType: "text/csv", Data: payload}, nil
	}}
	e, rec, dir := newExportEngine(t, client)

	path, err := e.Export(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "widgets_export.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, 1, rec.CountContaining("exported to"))
}

func TestEngine_Export_QueryCarriesFiltersOnly(t *testing.T) {
	listFn := echoPages(nil, 0, 0)
	var exportQuery url.Values
	client := &fakeAPI{
		getJSONFn: listFn,
		getBinaryFn: func(_ string, query url.Values) (*api.Download, error) {
			exportQuery = query
			return &api.Download{Data: []byte("x")}, nil
		},
	}
	e, _, _ := newExportEngine(t, client)
	ctx := context.Background()

	require.NoError(t, e.SetFilter("name", "ana"))
	require.NoError(t, e.ApplyFilters(ctx))
	require.NoError(t, e.SetDateRange("2026-01-01", "2026-01-31"))

	_, err := e.Export(ctx, "xlsx")
	require.NoError(t, err)

	assert.Contains(t, exportQuery.Get("search"), "ana")
	assert.Equal(t, "2026-01-01", exportQuery.Get("startDate"))
	assert.Equal(t, "2026-01-31", exportQuery.Get("endDate"))
	assert.Equal(t, "xlsx", exportQuery.Get("format"))
	assert.False(t, exportQuery.Has("page"), "exports cover the whole filtered set")
	assert.False(t, exportQuery.Has("limit"))
}

func TestEngine_Export_ServerFilename(t *testing.T) {
	t.Run("used when present", func(t *testing.T) {
		client := &fakeAPI{getBinaryFn: func(string, url.Values) (*api.Download, error) {
			return &api.Download{Filename: "winners_2026.xlsx", Data: []byte("x")}, nil
		}}
		e, _, dir := newExportEngine(t, client)

		path, err := e.Export(context.Background(), "xlsx")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "winners_2026.xlsx"), path)
	})

	t.Run("path components are stripped", func(t *testing.T) {
		client := &fakeAPI{getBinaryFn: func(string, url.Values) (*api.Download, error) {
			return &api.Download{Filename: "../../outside.csv", Data: []byte("x")}, nil
		}}
		e, _, dir := newExportEngine(t, client)

		path, err := e.Export(context.Background(), "csv")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "outside.csv"), path)
	})
}

func TestEngine_Export_NeverOverwrites(t *testing.T) {
	client := &fakeAPI{getBinaryFn: func(string, url.Values) (*api.Download, error) {
		return &api.Download{Data: []byte("x")}, nil
	}}
	e, _, dir := newExportEngine(t, client)
	ctx := context.Background()

	first, err := e.Export(ctx, "csv")
	require.NoError(t, err)
	second, err := e.Export(ctx, "csv")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "widgets_export.csv"), first)
	assert.Equal(t, filepath.Join(dir, "widgets_export_1.csv"), second)
}

func TestEngine_Export_RejectsUnknownFormat(t *testing.T) {
	client := &fakeAPI{}
	e, _, _ := newExportEngine(t, client)

	_, err := e.Export(context.Background(), "docx")
	require.ErrorIs(t, err, ErrBadFormat)
	assert.Contains(t, err.Error(), "docx")
	assert.Empty(t, client.calls, "invalid formats are rejected before any request")
}

func TestEngine_Export_Failure(t *testing.T) {
	client := &fakeAPI{getBinaryFn: func(string, url.Values) (*api.Download, error) {
		return nil, api.ErrUnavailable
	}}
	e, rec, _ := newExportEngine(t, client)

	_, err := e.Export(context.Background(), "csv")
	require.ErrorIs(t, err, api.ErrUnavailable)
	assert.Equal(t, 1, rec.CountContaining("export failed: server unavailable"))
}
