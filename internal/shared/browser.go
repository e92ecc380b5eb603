package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// OpenerCommand builds the command that hands link to the system URL opener.
//
// Supports macOS, Linux, and Windows platforms.
func OpenerCommand(link string) (*exec.Cmd, error) {
	switch rt := getRuntime(); rt {
	case "darwin":
		return exec.Command("open", link), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", link), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", link), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, rt)
	}
}

// OpenURL opens link with the system URL opener without waiting for it to exit.
func OpenURL(link string) error {
	cmd, err := OpenerCommand(link)
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", link, err)
	}
	return nil
}
