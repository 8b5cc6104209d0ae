package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vacstats/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	pendingDashboard() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Stats(ctx context.Context) error
	Whoami(ctx context.Context) error
	Ping(ctx context.Context) error
}

// pendingDashboard reports whether the session manager navigated to the
// dashboard view since the last command, e.g. right after a login.
func (a *App) pendingDashboard() bool {
	a.viewMu.Lock()
	defer a.viewMu.Unlock()
	return a.view == services.ViewDashboard
}

func (a *App) repl(ctx context.Context) {
	runREPL(ctx, a, a.status, a.readLine)
}

func (a *App) readLine() (string, bool) {
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// runREPL is a simple read-eval-print loop. It reads a line, parses the
// first token as the command, and dispatches to methods on 'a'. Unknown
// commands are reported back to the user. The loop exits on input EOF or
// when the user types "exit" or "quit".
//
// When a command leaves the dashboard view pending (a successful login
// does), the loop opens the dashboard before prompting again.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors inline. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, readLine func() (string, bool)) {
	for {
		if a.pendingDashboard() {
			_ = a.Dashboard(ctx)
		}

		printlnFn(fmt.Sprintf("vacstats %s> ", statusFn()))
		line, ok := readLine()
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, stats, whoami, ping, logout, exit")
			} else {
				printlnFn("Available commands: login, ping, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "d", "dashboard":
			_ = a.Dashboard(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "ping":
			_ = a.Ping(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
