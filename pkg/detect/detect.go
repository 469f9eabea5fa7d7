// Package detect reads the version of the locally installed browser.
package detect

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/errutils"
	"github.com/glorpus-work/getdriver/pkg/platform"
)

// Target selects which browser to query.
type Target int

const (
	// Chrome is Google Chrome, the primary target.
	Chrome Target = iota
	// Chromium is the alternate target.
	Chromium
)

func (t Target) String() string {
	switch t {
	case Chrome:
		return "chrome"
	case Chromium:
		return "chromium"
	}
	return fmt.Sprintf("target(%d)", int(t))
}

// TargetFor maps the chromium flag of the CLI to a Target.
func TargetFor(chromium bool) Target {
	if chromium {
		return Chromium
	}
	return Chrome
}

// Runner runs an external command and returns its standard output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Output implements Runner.
func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Command is an external invocation that prints the browser version.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Detector queries the installed browser through a Runner.
type Detector struct {
	runner Runner
}

// New creates a detector. A nil runner selects ExecRunner.
func New(runner Runner) *Detector {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Detector{runner: runner}
}

// CommandFor returns the version query of target on the family of p.
func CommandFor(p platform.Platform, target Target) (Command, error) {
	switch p.Family() {
	case platform.FamilyWindows:
		key := `HKEY_CURRENT_USER\SOFTWARE\Google\Chrome\BLBeacon`
		if target == Chromium {
			key = `HKEY_CURRENT_USER\SOFTWARE\Chromium\BLBeacon`
		}
		return Command{Name: "reg", Args: []string{"query", key, "/v", "version"}}, nil
	case platform.FamilyLinux:
		name := "google-chrome"
		if target == Chromium {
			name = "chromium-browser"
		}
		return Command{Name: name, Args: []string{"--version"}}, nil
	case platform.FamilyMac:
		name := "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"
		if target == Chromium {
			name = "/Applications/Chromium.app/Contents/MacOS/Chromium"
		}
		return Command{Name: name, Args: []string{"--version"}}, nil
	case platform.FamilyUnknown:
	}
	return Command{}, errutils.ErrUnknownPlatformWithDetails(p.String(), platform.ValidLabels())
}

// InstalledVersion runs the version query for target and returns the last
// whitespace-separated token of its output. The token is not validated.
func (d *Detector) InstalledVersion(ctx context.Context, p platform.Platform, target Target) (string, error) {
	cmd, err := CommandFor(p, target)
	if err != nil {
		return "", err
	}

	logger.Debug("detecting installed browser", logger.Fields{"target": target.String(), "command": cmd.String()})
	out, err := d.runner.Output(ctx, cmd.Name, cmd.Args...)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", errutils.ErrVersionUndetectable, cmd, err)
	}

	v := LastToken(string(out))
	if v == "" {
		return "", fmt.Errorf("%w: %s printed nothing", errutils.ErrVersionUndetectable, cmd)
	}
	logger.Debug("installed browser detected", logger.Fields{"target": target.String(), "version": v})
	return v, nil
}

// LastToken returns the last whitespace-delimited token of s.
func LastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
