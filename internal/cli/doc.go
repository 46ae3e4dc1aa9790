// Package cli is the interactive terminal surface of the admin client.
//
// # Overview
//
// App wires the configuration, logger, notifier, HTTP client, session
// manager and one view per managed entity, then hands control to a
// read-eval-print loop. Commands fall into two tiers: session commands
// (help, login, status, exit) are always available; everything touching
// the collections (use, list, filter, apply, show, create, edit, delete,
// export, ...) requires a live session.
//
// Views bind a resource engine to an entity's table columns and form
// fields, so the command handlers stay generic: adding an entity to the
// client is a descriptor plus display metadata, not new command code.
//
// Interactive input goes through small helpers with package-level seams
// (printlnFn, getSimpleText, getPassword) so tests can script both the
// command stream and the prompts.
package cli
