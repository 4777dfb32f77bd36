package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pagelinks/pagelinks/icon"
	"github.com/pagelinks/pagelinks/query"
	"github.com/pagelinks/pagelinks/util"
	"github.com/pagelinks/pagelinks/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	flag     string
	short    string
	location func() string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", "c", where.Cache},
	{"query history", "queries", "q", where.Queries},
	{"exports directory", "exports", "e", where.Exports},
	{"logs", "logs", "l", where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, t := range clearTargets {
		clearCmd.Flags().BoolP(t.flag, t.short, false, "clear "+t.name)
	}

	clearCmd.Flags().String("query", "", "forget a single search query")
	lo.Must0(clearCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached files, query history, exports or logs",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.flag))
		})

		forget := lo.Must(cmd.Flags().GetString("query"))
		if forget != "" {
			handleErr(query.Forget(forget))
			fmt.Printf("%s Forgot query %q\n", icon.Get(icon.Success), forget)
		}

		if len(selected) == 0 {
			if forget == "" {
				handleErr(cmd.Help())
			}
			return
		}

		for _, t := range selected {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), t.name))
			err := util.Delete(t.location())
			erase()
			if !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(t.name))
		}
	},
}
