package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/drawlabs/luckyadmin/internal/api"
	"github.com/drawlabs/luckyadmin/internal/models"
	"github.com/drawlabs/luckyadmin/internal/resource"
)

// listState is the non-generic slice of an engine snapshot the status
// line and prompts need.
type listState struct {
	Total int
	Page  int
	Pages int
	Limit int
	Count int
	Err   string
}

// entityView is the per-entity surface the command handlers drive. The
// query methods come promoted from the embedded engine; rendering and the
// form flows are the view's own.
type entityView interface {
	List(ctx context.Context) error
	SetFilter(field, value string) error
	ApplyFilters(ctx context.Context) error
	ClearFilters(ctx context.Context) error
	HasUnappliedChanges() bool
	Filters() (draft, applied map[string]string)
	SetSort(field, direction string) error
	SetDateRange(start, end string) error
	SetPage(n int) error
	NextPage() error
	PrevPage() error
	SetLimit(n int) error
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, format string) (string, error)
	Descriptor() resource.Descriptor

	state() listState
	renderList(w io.Writer)
	show(ctx context.Context, id string, w io.Writer) error
	create(ctx context.Context, in *prompter, w io.Writer) error
	edit(ctx context.Context, id string, in *prompter, w io.Writer) error
}

// view binds an engine to the entity's table columns and form fields.
type view[T any] struct {
	*resource.Engine[T]
	columns []string
	row     func(T) []string
	fields  []models.Field
}

var _ entityView = (*view[models.Client])(nil)

func newView[T any](desc resource.Descriptor, opts resource.Options,
	columns []string, row func(T) []string, fields []models.Field) *view[T] {
	return &view[T]{
		Engine:  resource.NewEngine[T](desc, opts),
		columns: columns,
		row:     row,
		fields:  fields,
	}
}

func (v *view[T]) state() listState {
	snap := v.Snapshot()
	return listState{
		Total: snap.TotalCount,
		Page:  snap.CurrentPage,
		Pages: snap.TotalPages,
		Limit: snap.Limit,
		Count: len(snap.Items),
		Err:   snap.Err,
	}
}

// renderList prints the current page as a table with a pagination footer.
func (v *view[T]) renderList(w io.Writer) {
	snap := v.Snapshot()
	if len(snap.Items) == 0 {
		fmt.Fprintln(w, "no records found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(v.columns, "\t"))
	for _, item := range snap.Items {
		fmt.Fprintln(tw, strings.Join(v.row(item), "\t"))
	}
	tw.Flush()
	pages := snap.TotalPages
	if pages < 1 {
		pages = 1
	}
	fmt.Fprintf(w, "page %d/%d, %d records\n", snap.CurrentPage, pages, snap.TotalCount)
}

// show prints a single record, or a missing-record notice.
func (v *view[T]) show(ctx context.Context, id string, w io.Writer) error {
	item, err := v.Get(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Fprintf(w, "%s record %s not found\n", v.Descriptor().Name, id)
			return nil
		}
		return err
	}
	return printRecord(w, item)
}

// create walks the form fields, re-prompting required and malformed
// answers, and posts the collected payload. Empty optional answers stay
// out of the payload entirely.
func (v *view[T]) create(ctx context.Context, in *prompter, w io.Writer) error {
	if v.Descriptor().Immutable {
		fmt.Fprintf(w, "%s are read-only\n", v.Descriptor().Name)
		return nil
	}
	payload := map[string]any{}
	for _, f := range v.fields {
		for {
			raw, err := in.field(f, "")
			if err != nil {
				return err
			}
			if raw == "" {
				if f.Required {
					fmt.Fprintln(w, f.Label+" is required")
					continue
				}
				break
			}
			value, err := convertField(f, raw)
			if err != nil {
				fmt.Fprintln(w, err.Error())
				continue
			}
			payload[f.Name] = value
			break
		}
	}
	created, err := v.Create(ctx, payload)
	if err != nil {
		return err
	}
	return printRecord(w, created)
}

// edit fetches the record, prompts each field with its current value and
// puts only the changed ones.
func (v *view[T]) edit(ctx context.Context, id string, in *prompter, w io.Writer) error {
	if v.Descriptor().Immutable {
		fmt.Fprintf(w, "%s are read-only\n", v.Descriptor().Name)
		return nil
	}
	current, err := v.Get(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Fprintf(w, "%s record %s not found\n", v.Descriptor().Name, id)
			return nil
		}
		return err
	}
	values := fieldValues(current)

	payload := map[string]any{}
	for _, f := range v.fields {
		for {
			raw, err := in.field(f, values[f.Name])
			if err != nil {
				return err
			}
			if raw == "" {
				break
			}
			value, err := convertField(f, raw)
			if err != nil {
				fmt.Fprintln(w, err.Error())
				continue
			}
			payload[f.Name] = value
			break
		}
	}
	if len(payload) == 0 {
		fmt.Fprintln(w, "nothing to change")
		return nil
	}
	updated, err := v.Update(ctx, id, payload)
	if err != nil {
		return err
	}
	return printRecord(w, updated)
}

func printRecord(w io.Writer, item any) error {
	b, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(b))
	return nil
}

// fieldValues flattens a record into displayable strings keyed by JSON
// field name, for edit-prompt defaults.
func fieldValues(item any) map[string]string {
	raw, err := json.Marshal(item)
	if err != nil {
		return map[string]string{}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		switch tv := val.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = tv
		case bool:
			if tv {
				out[k] = "yes"
			} else {
				out[k] = "no"
			}
		case float64:
			out[k] = strconv.FormatFloat(tv, 'f', -1, 64)
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
