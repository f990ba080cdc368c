package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	sess := a.sessions.Current()
	if sess == nil {
		return "(guest)"
	}
	s := sess.Username
	if sess.IsCreator() {
		s += " creator"
	}
	return fmt.Sprintf("(%s)", s)
}

// Root restores any persisted session and runs the REPL until the user
// exits. A corrupt or missing session silently starts the CLI logged out.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to clipstream CLI (type 'help' for commands)")

	if sess := a.sessions.Restore(ctx); sess != nil {
		printlnFn(fmt.Sprintf("Welcome back, %s", sess.Username))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
