//go:build !windows

// Package stderr captures output that C audio libraries (ALSA, PulseAudio)
// write directly to file descriptor 2, bypassing Go's os.Stderr, and
// forwards it to the log file so it never corrupts the TUI layout.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
	done       chan struct{}
)

// Start begins capturing stderr output. Each non-empty line is logged at warn
// level. Must be called early in main(), before the audio output is opened.
// Returns an error if capture cannot be set up, but the program can continue
// without stderr capture (lines will just go to the original stderr).
func Start(log zerolog.Logger) error {
	if started {
		return nil
	}

	// Create a pipe
	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	// Save original stderr file descriptor
	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	// Redirect stderr (fd 2) to the pipe's write end
	err = dup2(int(w.Fd()), int(os.Stderr.Fd()))
	if err != nil {
		syscall.Close(origStderr)
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true
	done = make(chan struct{})

	log = log.With().Str("component", "stderr").Logger()
	go forward(pipeRead, log, done)

	return nil
}

func forward(r *os.File, log zerolog.Logger, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn().Msg(line)
		}
	}
}

// Stop restores the original stderr and waits for captured lines to be
// logged. Should be called on program exit.
func Stop() {
	if !started {
		return
	}

	// Restore original stderr
	_ = dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	origStderr = 0

	// Closing the write end ends the forwarder once the pipe is drained.
	pipeWrite.Close()
	<-done
	pipeRead.Close()

	started = false
}
