package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Entities(ctx context.Context) error
	Use(ctx context.Context, name string) error
	List(ctx context.Context) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	GoToPage(ctx context.Context, arg string) error
	SetLimit(ctx context.Context, arg string) error
	Filter(ctx context.Context, args []string) error
	Filters(ctx context.Context) error
	Apply(ctx context.Context) error
	Sort(ctx context.Context, args []string) error
	Range(ctx context.Context, args []string) error
	Show(ctx context.Context, id string) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the admin console.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the rest as arguments, and dispatches to methods on 'a'.
// Unknown commands are reported back to the user. The loop exits on scanner
// EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — authenticate
//	  - status         — check the stored session
//	  - exit | quit    — leave the program
//
//	Logged in, additionally:
//	  - whoami, logout
//	  - entities, use <entity>
//	  - (l)ist, next, prev, page <n>, limit <n>
//	  - filter <field> <value>, filter clear, filters, apply
//	  - sort <field> [asc|desc], range <start> [end]
//	  - show <id>, create, edit <id>, delete <id>
//	  - export [csv|xlsx|pdf]
//
// Commands that operate on collections refuse to run before login. Any
// errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("lucky> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printHelp(a.isLoggedIn())
			continue

		case "login":
			_ = a.Login(ctx)
			continue

		case "status":
			_ = a.Status(ctx)
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			printlnFn("Please log in first (type 'login').")
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "entities":
			_ = a.Entities(ctx)

		case "use":
			if len(args) != 1 {
				printlnFn("Usage: use <entity>")
				continue
			}
			_ = a.Use(ctx, args[0])

		case "l", "list":
			_ = a.List(ctx)

		case "next":
			_ = a.NextPage(ctx)

		case "prev":
			_ = a.PrevPage(ctx)

		case "page":
			if len(args) != 1 {
				printlnFn("Usage: page <number>")
				continue
			}
			_ = a.GoToPage(ctx, args[0])

		case "limit":
			if len(args) != 1 {
				printlnFn("Usage: limit <1-100>")
				continue
			}
			_ = a.SetLimit(ctx, args[0])

		case "filter":
			if len(args) == 0 {
				printlnFn("Usage: filter <field> <value> | filter <field> | filter clear")
				continue
			}
			_ = a.Filter(ctx, args)

		case "filters":
			_ = a.Filters(ctx)

		case "apply":
			_ = a.Apply(ctx)

		case "sort":
			if len(args) == 0 {
				printlnFn("Usage: sort <field> [asc|desc] | sort clear")
				continue
			}
			_ = a.Sort(ctx, args)

		case "range":
			if len(args) == 0 {
				printlnFn("Usage: range <start> [end] | range clear (dates are YYYY-MM-DD)")
				continue
			}
			_ = a.Range(ctx, args)

		case "show":
			if len(args) != 1 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "create":
			_ = a.Create(ctx)

		case "edit":
			if len(args) != 1 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "delete":
			if len(args) != 1 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "export":
			_ = a.Export(ctx, args)

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(loggedIn bool) {
	if !loggedIn {
		printlnFn("Available commands: login, status, help, exit")
		return
	}
	printlnFn("Session:  status, whoami, logout, exit")
	printlnFn("Browse:   entities, use <entity>, (l)ist, next, prev, page <n>, limit <n>")
	printlnFn("Filter:   filter <field> <value>, filter clear, filters, apply, sort <field> [asc|desc], range <start> [end]")
	printlnFn("Records:  show <id>, create, edit <id>, delete <id>, export [csv|xlsx|pdf]")
}
