package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/drawlabs/luckyadmin/internal/resource"
)

// view returns the active entity view.
func (a *App) view() entityView { return a.views[a.current] }

// Use switches the active collection and loads its first page.
func (a *App) Use(ctx context.Context, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := a.views[name]; !ok {
		fmt.Fprintf(a.out, "unknown entity %q, type 'entities' for the list\n", name)
		return nil
	}
	a.current = name
	return a.List(ctx)
}

// Entities lists the available collections, marking the active one.
func (a *App) Entities(ctx context.Context) error {
	for _, name := range a.order {
		marker := "  "
		if name == a.current {
			marker = "* "
		}
		fmt.Fprintln(a.out, marker+name)
	}
	return nil
}

// List fetches the current page of the active collection and renders it.
// A staged filter change is pointed out but never applied implicitly.
func (a *App) List(ctx context.Context) error {
	v := a.view()
	if v.HasUnappliedChanges() {
		fmt.Fprintln(a.out, "draft filters not applied yet (type 'apply')")
	}
	if err := v.List(ctx); err != nil {
		return err
	}
	v.renderList(a.out)
	return nil
}

// NextPage moves forward one page and refreshes the listing.
func (a *App) NextPage(ctx context.Context) error {
	if err := a.view().NextPage(); err != nil {
		if errors.Is(err, resource.ErrNoPage) {
			fmt.Fprintln(a.out, "already at the last page")
			return nil
		}
		return err
	}
	return a.List(ctx)
}

// PrevPage moves back one page and refreshes the listing.
func (a *App) PrevPage(ctx context.Context) error {
	if err := a.view().PrevPage(); err != nil {
		if errors.Is(err, resource.ErrNoPage) {
			fmt.Fprintln(a.out, "already at the first page")
			return nil
		}
		return err
	}
	return a.List(ctx)
}

// GoToPage jumps to the given page and refreshes the listing.
func (a *App) GoToPage(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(a.out, "page must be a number")
		return nil
	}
	if err := a.view().SetPage(n); err != nil {
		fmt.Fprintln(a.out, "page numbers start at 1")
		return nil
	}
	return a.List(ctx)
}

// SetLimit changes the page size and refreshes the listing.
func (a *App) SetLimit(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(a.out, "limit must be a number")
		return nil
	}
	if err := a.view().SetLimit(n); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	return a.List(ctx)
}

// Filter stages a search value, removes one, or clears everything.
//
//	filter <field> <value>  stage a value
//	filter <field>          remove the staged value
//	filter clear            reset filters and dates, then reload
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 1 && args[0] == "clear" {
		if err := a.view().ClearFilters(ctx); err != nil {
			return err
		}
		a.view().renderList(a.out)
		return nil
	}
	field := args[0]
	value := strings.Join(args[1:], " ")
	if err := a.view().SetFilter(field, value); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	if strings.TrimSpace(value) == "" {
		fmt.Fprintf(a.out, "removed filter %s (type 'apply' to refresh)\n", field)
		return nil
	}
	fmt.Fprintf(a.out, "staged %s = %q (type 'apply' to run)\n", field, value)
	return nil
}

// Filters shows the staged and applied filter sets.
func (a *App) Filters(ctx context.Context) error {
	draft, applied := a.view().Filters()
	fmt.Fprintln(a.out, "staged:")
	printFilterSet(a.out, draft)
	fmt.Fprintln(a.out, "applied:")
	printFilterSet(a.out, applied)
	if a.view().HasUnappliedChanges() {
		fmt.Fprintln(a.out, "staged filters differ, type 'apply' to run them")
	}
	return nil
}

func printFilterSet(w io.Writer, set map[string]string) {
	if len(set) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	fields := make([]string, 0, len(set))
	for f := range set {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s = %q\n", f, set[f])
	}
}

// Apply promotes the staged filters and reloads from the first page.
func (a *App) Apply(ctx context.Context) error {
	if err := a.view().ApplyFilters(ctx); err != nil {
		return err
	}
	a.view().renderList(a.out)
	return nil
}

// Sort orders the listing and reloads. "sort clear" removes the ordering.
func (a *App) Sort(ctx context.Context, args []string) error {
	field, direction := args[0], ""
	if field == "clear" {
		field = ""
	} else if len(args) > 1 {
		direction = args[1]
	}
	if err := a.view().SetSort(field, direction); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	return a.List(ctx)
}

// Range bounds the listing by creation date and reloads. A single date
// sets only the lower bound; "range clear" removes both.
func (a *App) Range(ctx context.Context, args []string) error {
	start, end := args[0], ""
	if start == "clear" {
		start = ""
	} else if len(args) > 1 {
		end = args[1]
	}
	if err := a.view().SetDateRange(start, end); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	return a.List(ctx)
}

// Show prints a single record from the active collection.
func (a *App) Show(ctx context.Context, id string) error {
	return a.view().show(ctx, id, a.out)
}

// Create walks the entity form and posts a new record.
func (a *App) Create(ctx context.Context) error {
	return a.view().create(ctx, a.prompt, a.out)
}

// Edit updates a record field by field, keeping current values on empty
// answers.
func (a *App) Edit(ctx context.Context, id string) error {
	return a.view().edit(ctx, id, a.prompt, a.out)
}

// Delete removes a record after confirmation and shows the refreshed page.
func (a *App) Delete(ctx context.Context, id string) error {
	v := a.view()
	if v.Descriptor().Immutable {
		fmt.Fprintf(a.out, "%s are read-only\n", v.Descriptor().Name)
		return nil
	}
	ok, err := a.prompt.confirm(fmt.Sprintf("delete %s record %s?", v.Descriptor().Name, id))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "cancelled")
		return nil
	}
	if err := v.Delete(ctx, id); err != nil {
		return err
	}
	v.renderList(a.out)
	return nil
}

// Export downloads the filtered records of the active collection.
func (a *App) Export(ctx context.Context, args []string) error {
	format := ""
	if len(args) > 0 {
		format = args[0]
	}
	if _, err := a.view().Export(ctx, format); err != nil {
		if errors.Is(err, resource.ErrBadFormat) {
			fmt.Fprintln(a.out, err.Error())
		}
		return err
	}
	return nil
}
