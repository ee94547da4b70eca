package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mediacatalog/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const msgSignInFirst = "Please sign in first (type 'signin')"

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isAuthenticated() bool
	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	SignOut(ctx context.Context) error
	Home(ctx context.Context) error
	Show(ctx context.Context, view services.View) error
	ToggleBookmark(ctx context.Context, id string) error
	Reload(ctx context.Context) error
	Width(ctx context.Context, arg string) error
}

var views = map[string]services.View{
	"all":       services.ViewAll,
	"movies":    services.ViewMovies,
	"tv":        services.ViewTVSeries,
	"bookmarks": services.ViewBookmarked,
	"trending":  services.ViewTrending,
}

// runREPL starts a simple read–eval–print loop for the catalog CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, when ctx is done or when
// the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help              show available commands
//	  - signin            authenticate
//	  - signup            create an account
//	  - width [px]        show the viewport class, or classify px
//	  - exit | quit       leave the program
//
//	Signed in:
//	  - home              trending carousel and the full catalog
//	  - all | movies | tv | bookmarks | trending
//	  - bookmark <id>     toggle the bookmark of an item
//	  - reload            fetch the catalog again
//	  - signout           forget the local session
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("mc %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isAuthenticated() {
				printlnFn("Available commands: home, all, movies, tv, bookmarks, trending, bookmark <id>, reload, width [px], signout, exit")
			} else {
				printlnFn("Available commands: signin, signup, width [px], exit")
			}
			continue

		case "signin":
			_ = a.SignIn(ctx)
			continue

		case "signup":
			_ = a.SignUp(ctx)
			continue

		case "width":
			_ = a.Width(ctx, strings.Join(args, " "))
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !isCatalogCommand(cmd) {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isAuthenticated() {
			printlnFn(msgSignInFirst)
			continue
		}

		switch cmd {
		case "home":
			_ = a.Home(ctx)
		case "bookmark":
			if len(args) != 1 {
				printlnFn("Usage: bookmark <id>")
				continue
			}
			_ = a.ToggleBookmark(ctx, args[0])
		case "reload":
			_ = a.Reload(ctx)
		case "signout":
			_ = a.SignOut(ctx)
		default:
			_ = a.Show(ctx, views[cmd])
		}
	}
}

func isCatalogCommand(cmd string) bool {
	switch cmd {
	case "home", "bookmark", "reload", "signout":
		return true
	}
	_, ok := views[cmd]
	return ok
}
