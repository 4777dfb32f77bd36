// Package version compares the running build with the latest release.
package version

import (
	"fmt"
	"os"

	"github.com/pagelinks/pagelinks/color"
	"github.com/pagelinks/pagelinks/constant"
	"github.com/pagelinks/pagelinks/icon"
	"github.com/pagelinks/pagelinks/key"
	"github.com/pagelinks/pagelinks/style"
	"github.com/pagelinks/pagelinks/util"
	"github.com/spf13/viper"
)

// Notify prints a notice to stderr when a newer release exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	_, _ = fmt.Fprintf(os.Stderr, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/"+constant.Repository+"/releases/tag/v"+latest),
	)
}
