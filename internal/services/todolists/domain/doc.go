// Package domain holds the per-session list collection and the rules that
// govern it.
//
// A Store is a plain value: handlers load it from session storage, apply one
// mutation and hand it back for persistence. Nothing in this package performs
// I/O or locking; callers serialize access per session.
package domain
