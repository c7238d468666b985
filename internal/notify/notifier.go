package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// DesktopNotifier presents a delivered reminder outside the TUI.
type DesktopNotifier interface {
	Send(d Delivery) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Delivery) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(d Delivery) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", d.Title, d.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(d.Body), escapeAppleScript(d.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
