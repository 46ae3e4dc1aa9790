package resource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/drawlabs/luckyadmin/internal/filex"
)

var exportFormats = []string{"csv", "xlsx", "pdf"}

// Export downloads the collection with the applied filters in the given
// format (csv when empty) and saves it under the download directory,
// never overwriting an existing file. It returns the saved path.
func (e *Engine[T]) Export(ctx context.Context, format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	if !slices.Contains(exportFormats, format) {
		return "", fmt.Errorf("%w %q, use one of: %s",
			ErrBadFormat, format, strings.Join(exportFormats, ", "))
	}

	e.mu.Lock()
	query := e.filterQueryLocked()
	e.mu.Unlock()
	query.Set("format", format)

	download, err := e.client.GetBinary(ctx, e.desc.Path+"/export", query)
	if err != nil {
		e.fail("export failed", err)
		return "", err
	}

	name := download.Filename
	if name == "" {
		name = fmt.Sprintf("%s_export.%s", e.desc.Name, format)
	}
	path, err := e.saveDownload(name, download.Data)
	if err != nil {
		e.fail("export failed", err)
		return "", err
	}

	e.log.Debug(ctx, "export saved",
		"entity", e.desc.Name, "path", path,
		"contentType", download.ContentType, "bytes", len(download.Data))
	e.notifier.Success("exported to " + path)
	return path, nil
}

func (e *Engine[T]) saveDownload(name string, data []byte) (string, error) {
	dir, err := filex.EnsureDir(e.downloadDir)
	if err != nil {
		return "", fmt.Errorf("preparing download dir: %w", err)
	}
	// Base strips any path the server smuggled into the filename.
	path := filex.UniquePath(filepath.Join(dir, filepath.Base(name)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
