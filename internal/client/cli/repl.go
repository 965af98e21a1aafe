package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs. The
// real App type satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Verify(ctx context.Context, args []string) error
	Resend(ctx context.Context, args []string) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Board(ctx context.Context) error
	MoveJob(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	AddNote(ctx context.Context, args []string) error
	DeleteNote(ctx context.Context, args []string) error
	Theme(ctx context.Context) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on a. Unknown commands are reported back.
// The loop exits on scanner EOF or when the user types "exit"/"quit".
// Command handlers print their own errors; the loop stays resilient.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprintf(w, "jt %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: (l)ist, board, move, show, add, edit, delete, note, delnote, theme, status, logout, exit")
				fmt.Fprintln(w, "  list [status=applied|interview|offer|rejected] [search=text] [sort=applied_date|company_name] [order=asc|desc]")
				fmt.Fprintln(w, "  move <job-id> <status> [index]")
			} else {
				fmt.Fprintln(w, "Available commands: login, register, verify <module>, resend <module>, forgot, reset, exit")
			}

		case "login":
			_ = a.Login(ctx)
		case "register":
			_ = a.Register(ctx)
		case "verify":
			_ = a.Verify(ctx, args)
		case "resend":
			_ = a.Resend(ctx, args)
		case "forgot":
			_ = a.Forgot(ctx)
		case "reset":
			_ = a.Reset(ctx)

		case "l", "list":
			_ = a.List(ctx, args)
		case "board":
			_ = a.Board(ctx)
		case "move":
			_ = a.MoveJob(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "add":
			_ = a.Add(ctx)
		case "edit":
			_ = a.Edit(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "note":
			_ = a.AddNote(ctx, args)
		case "delnote":
			_ = a.DeleteNote(ctx, args)
		case "theme":
			_ = a.Theme(ctx)
		case "status":
			_ = a.Status(ctx)
		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
