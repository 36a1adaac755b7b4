package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Sync(ctx context.Context) error
	Board(ctx context.Context) error
	ListReminders(ctx context.Context) error
	AddReminder(ctx context.Context) error
	EditReminder(ctx context.Context) error
	DeleteReminder(ctx context.Context) error
	ListFeedback(ctx context.Context) error
	SendFeedback(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Streeek client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("streeek> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, sync, board, reminders, remind, edit, unremind, feedback, report, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "b", "board":
			_ = a.Board(ctx)

		case "reminders":
			_ = a.ListReminders(ctx)

		case "remind":
			_ = a.AddReminder(ctx)

		case "edit":
			_ = a.EditReminder(ctx)

		case "unremind":
			_ = a.DeleteReminder(ctx)

		case "feedback":
			_ = a.ListFeedback(ctx)

		case "report":
			_ = a.SendFeedback(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// Root runs the REPL on stdin until exit.
func (a *App) Root(ctx context.Context) {
	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	if account := a.accounts.Current(); account != nil {
		return account.Username
	}
	return "signed out"
}
