package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(parts ...string) {
	f.calls = append(f.calls, strings.Join(parts, " "))
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error   { f.record("status"); return nil }
func (f *fakeExec) WhoAmI(ctx context.Context) error   { f.record("whoami"); return nil }
func (f *fakeExec) Entities(ctx context.Context) error { f.record("entities"); return nil }
func (f *fakeExec) Use(ctx context.Context, name string) error {
	f.record("use", name)
	return nil
}
func (f *fakeExec) List(ctx context.Context) error     { f.record("list"); return nil }
func (f *fakeExec) NextPage(ctx context.Context) error { f.record("next"); return nil }
func (f *fakeExec) PrevPage(ctx context.Context) error { f.record("prev"); return nil }
func (f *fakeExec) GoToPage(ctx context.Context, arg string) error {
	f.record("page", arg)
	return nil
}
func (f *fakeExec) SetLimit(ctx context.Context, arg string) error {
	f.record("limit", arg)
	return nil
}
func (f *fakeExec) Filter(ctx context.Context, args []string) error {
	f.record(append([]string{"filter"}, args...)...)
	return nil
}
func (f *fakeExec) Filters(ctx context.Context) error { f.record("filters"); return nil }
func (f *fakeExec) Apply(ctx context.Context) error   { f.record("apply"); return nil }
func (f *fakeExec) Sort(ctx context.Context, args []string) error {
	f.record(append([]string{"sort"}, args...)...)
	return nil
}
func (f *fakeExec) Range(ctx context.Context, args []string) error {
	f.record(append([]string{"range"}, args...)...)
	return nil
}
func (f *fakeExec) Show(ctx context.Context, id string) error { f.record("show", id); return nil }
func (f *fakeExec) Create(ctx context.Context) error          { f.record("create"); return nil }
func (f *fakeExec) Edit(ctx context.Context, id string) error { f.record("edit", id); return nil }
func (f *fakeExec) Delete(ctx context.Context, id string) error {
	f.record("delete", id)
	return nil
}
func (f *fakeExec) Export(ctx context.Context, args []string) error {
	f.record(append([]string{"export"}, args...)...)
	return nil
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginGateAndDispatch(t *testing.T) {
	lines := captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"list",
		"login",
		"use clients",
		"filter name bruno",
		"apply",
		"next",
		"show 42",
		"export xlsx",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(s)" }, bufio.NewScanner(input))

	want := "login;use clients;filter name bruno;apply;next;show 42;export xlsx;logout"
	if got := strings.Join(exec.calls, ";"); got != want {
		t.Fatalf("dispatched calls mismatch:\n got %q\nwant %q", got, want)
	}

	gated := false
	for _, l := range *lines {
		if strings.Contains(l, "Please log in first") {
			gated = true
		}
	}
	if !gated {
		t.Fatalf("expected a log-in-first notice before login, output: %q", *lines)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	lines := captureOutput(t)

	input := strings.NewReader("use\npage\nlimit\nfilter\nsort\nrange\nshow\nedit\ndelete\nquit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	usage := 0
	for _, l := range *lines {
		if strings.HasPrefix(l, "Usage:") {
			usage++
		}
	}
	if usage != 9 {
		t.Fatalf("want 9 usage notices, got %d in %q", usage, *lines)
	}
}

func TestRunREPL_HelpAndUnknown(t *testing.T) {
	lines := captureOutput(t)

	input := strings.NewReader("help\nfoobar\nexit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	var sawRecords, sawUnknown bool
	for _, l := range *lines {
		if strings.HasPrefix(l, "Records:") {
			sawRecords = true
		}
		if l == "Unknown command: foobar" {
			sawUnknown = true
		}
	}
	if !sawRecords {
		t.Fatalf("logged-in help is missing the record commands: %q", *lines)
	}
	if !sawUnknown {
		t.Fatalf("unknown command was not reported: %q", *lines)
	}
}

func TestRunREPL_LoggedOutHelpIsShort(t *testing.T) {
	lines := captureOutput(t)

	input := strings.NewReader("help\nexit\n")
	runREPL(context.Background(), &fakeExec{}, func() string { return "s" }, bufio.NewScanner(input))

	for _, l := range *lines {
		if strings.Contains(l, "export") {
			t.Fatalf("logged-out help leaks collection commands: %q", l)
		}
	}
}
