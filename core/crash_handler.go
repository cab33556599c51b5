package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/hamstercide/terminal"
)

var (
	cleanupMu sync.Mutex
	cleanup   func()
	crashing  atomic.Bool
)

// SetCrashCleanup registers the terminal restore hook run before a crash report
// The HUD registers its screen finalizer; nil clears it
func SetCrashCleanup(fn func()) {
	cleanupMu.Lock()
	cleanup = fn
	cleanupMu.Unlock()
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}
	// Second panic while reporting the first goes straight out
	if !crashing.CompareAndSwap(false, true) {
		os.Exit(2)
	}

	cleanupMu.Lock()
	fn := cleanup
	cleanupMu.Unlock()
	if fn != nil {
		func() {
			defer func() { _ = recover() }()
			fn()
		}()
	} else if terminal.IsInteractive() {
		terminal.EmergencyReset(os.Stdout)
	}

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
