package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
)

var (
	screenMu sync.Mutex
	screen   tcell.Screen
)

// swapped by tests
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// RegisterScreen sets the screen HandleCrash restores before printing, nil clears it
func RegisterScreen(s tcell.Screen) {
	screenMu.Lock()
	screen = s
	screenMu.Unlock()
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	// Restore terminal to sane state immediately
	screenMu.Lock()
	s := screen
	screen = nil
	screenMu.Unlock()
	if s != nil {
		s.Fini()
	}

	fmt.Fprintf(stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	if f, ok := stderr.(*os.File); ok {
		f.Sync()
	}

	exit(1)
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
