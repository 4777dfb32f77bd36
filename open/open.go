// Package open hands files and URLs to the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pagelinks/pagelinks/constant"
)

// Start opens target with the default handler without waiting for it.
func Start(target string) error {
	return StartWith(target, "")
}

// StartWith opens target with app, or with the default handler when app is empty.
func StartWith(target, app string) error {
	cmd, err := command(runtime.GOOS, target, app)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(goos, target, app string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		if app == "" {
			rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
			return exec.Command(rundll, "url.dll,FileProtocolHandler", target), nil
		}
		// cmd's start treats & as a separator
		return exec.Command("cmd", "/C", "start", "", app, strings.ReplaceAll(target, "&", "^&")), nil
	case constant.Darwin:
		if app == "" {
			return exec.Command("open", target), nil
		}
		return exec.Command("open", "-a", app, target), nil
	case constant.Linux:
		if app == "" {
			return exec.Command("xdg-open", target), nil
		}
		return exec.Command(app, target), nil
	case constant.Android:
		return exec.Command("termux-open", target), nil
	default:
		return nil, fmt.Errorf("opening files is not supported on %s", goos)
	}
}
