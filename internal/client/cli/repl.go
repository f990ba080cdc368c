package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Feed(ctx context.Context) error
	More(ctx context.Context) error
	Mine(ctx context.Context) error
	MoreMine(ctx context.Context) error
	Like(ctx context.Context, n int) error
	Unlike(ctx context.Context, n int) error
	Comments(ctx context.Context, n int) error
	Comment(ctx context.Context, n int) error
	Upload(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the clipstream CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - signup         — create an account
//	  - login          — authenticate
//	  - feed | more    — browse the public feed
//	  - comments <n>   — show a video's comment thread
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - all of the above, plus
//	  - like <n>       — like the n-th listed video
//	  - unlike <n>     — remove a like
//	  - comment <n>    — post a comment on the n-th listed video
//	  - mine | morem   — browse your own videos (creators only)
//	  - upload         — upload a video (creators only)
//	  - whoami         — show the current session
//	  - logout         — log out
//
// Commands taking <n> refer to the 1-based position in the last listing.
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("clips> %s > ", statusFn()))
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
			if a.isLoggedIn() {
				printlnFn("Available commands: (f)eed, more, like <n>, unlike <n>, comments <n>, comment <n>, mine, morem, upload, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, (f)eed, more, comments <n>, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "f", "feed":
			_ = a.Feed(ctx)

		case "more":
			_ = a.More(ctx)

		case "mine":
			_ = a.Mine(ctx)

		case "morem":
			_ = a.MoreMine(ctx)

		case "like", "unlike", "comments", "comment":
			n, ok := indexArg(cmd, args)
			if !ok {
				continue
			}
			switch cmd {
			case "like":
				_ = a.Like(ctx, n)
			case "unlike":
				_ = a.Unlike(ctx, n)
			case "comments":
				_ = a.Comments(ctx, n)
			case "comment":
				_ = a.Comment(ctx, n)
			}

		case "upload":
			_ = a.Upload(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// indexArg parses the 1-based listing position argument of cmd.
func indexArg(cmd string, args []string) (int, bool) {
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <n>", cmd))
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		printlnFn(fmt.Sprintf("Usage: %s <n>", cmd))
		return 0, false
	}
	return n, true
}
