package icon

import (
	"github.com/pagelinks/pagelinks/color"
	"github.com/pagelinks/pagelinks/style"
)

type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Progress
	Link
	Page
	Search
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    style.Fg(color.Green)(""),
		plain:   style.Fg(color.Green)("✓"),
		squares: style.Fg(color.Green)("■"),
	},
	Fail: {
		emoji:   "💀",
		nerd:    style.Fg(color.Red)("ﮊ"),
		plain:   style.Fg(color.Red)("✗"),
		squares: style.Fg(color.Red)("■"),
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    style.Fg(color.Yellow)(""),
		plain:   style.Fg(color.Yellow)("!"),
		squares: style.Fg(color.Yellow)("■"),
	},
	Progress: {
		emoji:   "⏳",
		nerd:    style.Fg(color.Blue)(""),
		plain:   style.Fg(color.Blue)("…"),
		squares: style.Fg(color.Blue)("□"),
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "→",
		squares: "▪",
	},
	Page: {
		emoji:   "📄",
		nerd:    "",
		plain:   "#",
		squares: "▫",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		squares: "▪",
	},
}
