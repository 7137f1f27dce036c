package cli

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Clipboard copies text with the platform clipboard utility.
type Clipboard struct {
	goos     string
	lookPath func(string) (string, error)
}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{goos: runtime.GOOS, lookPath: exec.LookPath}
}

// command returns the argv of the first clipboard utility available.
func (c *Clipboard) command() ([]string, error) {
	var candidates [][]string
	switch c.goos {
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	case "linux", "freebsd", "openbsd":
		candidates = [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	case "windows":
		candidates = [][]string{{"clip"}}
	default:
		return nil, fmt.Errorf("clipboard not supported on %s", c.goos)
	}
	for _, argv := range candidates {
		if _, err := c.lookPath(argv[0]); err == nil {
			return argv, nil
		}
	}
	return nil, errors.New("no clipboard utility found")
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	argv, err := c.command()
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("copy with %s: %w", argv[0], err)
	}
	return nil
}
