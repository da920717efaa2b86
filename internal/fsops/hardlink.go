package fsops

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// Hard links are created by shelling out to the host OS rather than calling
// the syscall directly, so the behavior matches whatever the platform's own
// tooling does. Argv builders are keyed by GOOS; entries after the first are
// legacy fallbacks tried only when the preferred command cannot start
// (mklink needs a modern cmd.exe, older Windows ships fsutil instead).
var linkArgv = map[string][]func(src, dst string) []string{
	"windows": {
		func(src, dst string) []string { return []string{"cmd", "/c", "mklink", "/H", dst, src} },
		func(src, dst string) []string { return []string{"fsutil", "hardlink", "create", dst, src} },
	},
}

// posixLink is the default for every platform without its own table entry.
func posixLink(src, dst string) []string { return []string{"ln", src, dst} }

// CreateHardLink creates a hard link at destination pointing to source by
// invoking the host OS link command. It blocks until the command exits.
// A command that runs but exits nonzero is an I/O error; a command that
// cannot be started at all is a ProcessLaunch error.
func CreateHardLink(source, destination string) error {
	return hardLink(runtime.GOOS, source, destination)
}

func hardLink(goos, source, destination string) error {
	src, dst := abs(source), abs(destination)

	builders := linkArgv[goos]
	if len(builders) == 0 {
		builders = []func(string, string) []string{posixLink}
	}

	var startErr error
	for _, build := range builders {
		argv := build(src, dst)
		cmd := exec.Command(argv[0], argv[1:]...)
		output, err := cmd.CombinedOutput()
		if err == nil {
			return nil
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("link %s -> %s: %s exited with %d: %s",
				src, dst, argv[0], exitErr.ExitCode(), firstLine(output))
		}
		// Could not start; remember the error and try the fallback.
		startErr = err
	}
	return fmt.Errorf("%w: link %s -> %s: %v", ErrProcessLaunch, src, dst, startErr)
}

func firstLine(output []byte) string {
	for i, b := range output {
		if b == '\n' || b == '\r' {
			return string(output[:i])
		}
	}
	return string(output)
}
