//go:build !windows

// Package stderr captures output that C audio libraries (ALSA) write
// directly to file descriptor 2, so it does not interleave with the menu.
// Captured lines are handed to a sink, typically the debug log.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"
)

var (
	mu        sync.Mutex
	original  *os.File
	pipeRead  *os.File
	pipeWrite *os.File
	drained   chan struct{}
	started   bool
)

// Start redirects fd 2 into a pipe and calls sink for each non-empty line.
// Must be called before the audio backend is initialized. On error the
// program can continue without capture.
func Start(sink func(line string)) error {
	mu.Lock()
	defer mu.Unlock()

	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	// Keep the real stderr reachable through Original
	origFd, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(origFd)
		r.Close()
		w.Close()
		return err
	}

	original = os.NewFile(uintptr(origFd), "stderr")
	pipeRead = r
	pipeWrite = w
	drained = make(chan struct{})
	started = true

	go func(r io.Reader, done chan struct{}) {
		defer close(done)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				sink(line)
			}
		}
	}(r, drained)

	return nil
}

// Original returns the process stderr as it was before Start.
func Original() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	if original != nil {
		return original
	}
	return os.Stderr
}

// Stop restores fd 2 and waits until every captured line reached the sink.
func Stop() {
	mu.Lock()
	defer mu.Unlock()

	if !started {
		return
	}

	_ = syscall.Dup2(int(original.Fd()), int(os.Stderr.Fd()))

	// fd 2 no longer refers to the pipe, so closing our end sends EOF
	pipeWrite.Close()
	<-drained
	pipeRead.Close()
	original.Close()

	original = nil
	started = false
}
