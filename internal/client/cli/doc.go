// Package cli provides the interactive media catalog command-line client.
//
// It wires configuration, the local state database, the HTTP API client,
// the session and catalog services and a viewport watcher, then runs a REPL.
//
// Routing
//
// Commands are split into public ones (help, signin, signup, width, exit)
// and catalog ones (home, all, movies, tv, bookmarks, trending,
// bookmark <id>, reload, signout). Catalog commands are only reachable while
// the session is authenticated; otherwise the user is sent to signin. The
// first catalog view loads the catalog.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command table.
package cli
