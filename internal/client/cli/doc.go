// Package cli provides the interactive clipstream command-line client.
//
// It wires configuration, local session storage, the backend API gateway,
// the feed pager, the optimistic like engine, and the comment loader into
// an interactive REPL. Typical flow: restore the persisted session, browse
// the feed page by page, and engage with videos by index.
//
// Key features:
//   - Login / Signup / Logout with a persisted session
//   - Paged video feed with duplicate suppression
//   - Optimistic like / unlike with rollback on server rejection
//   - Comment threads and posting
//   - Creator-only commands: own-feed browsing and uploads
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
