package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pagelinks/pagelinks/extract"
	"github.com/pagelinks/pagelinks/harvest"
	"github.com/pagelinks/pagelinks/query"
	"github.com/pagelinks/pagelinks/util"
)

func validateSeeds(answer any) error {
	if len(harvest.Seeds(util.SplitLines(answer.(string)))) == 0 {
		return errors.New("at least one URL is required")
	}
	return nil
}

func validatePages(answer any) error {
	n, err := strconv.Atoi(strings.TrimSpace(answer.(string)))
	if err != nil || n < 1 {
		return errors.New("enter a whole number of pages, 1 or more")
	}
	return nil
}

// searchPrompt asks for an optional site search query. Tab completes
// previous queries and the help names the most used one.
func searchPrompt(current string) *survey.Input {
	help := "Leave empty to paginate the listings"
	if prev, ok := query.Suggest(current).Get(); ok {
		help += fmt.Sprintf(". Previous queries complete with tab, e.g. %q", prev)
	}

	return &survey.Input{
		Message: "Site search query",
		Default: current,
		Help:    help,
		Suggest: query.SuggestMany,
	}
}

// askSettings fills s interactively. Values already in s are the defaults.
func askSettings(s *scrapeSettings) error {
	answers := struct {
		Seeds  string
		Mode   string
		Filter string
		Pages  string
	}{}

	questions := []*survey.Question{
		{
			Name: "seeds",
			Prompt: &survey.Multiline{
				Message: "Listing URLs, one per line",
				Default: strings.Join(s.seeds, "\n"),
			},
			Validate: validateSeeds,
		},
		{
			Name: "mode",
			Prompt: &survey.Select{
				Message: "Extraction mode",
				Options: extract.Modes(),
				Default: s.mode.String(),
			},
		},
		{
			Name: "pages",
			Prompt: &survey.Input{
				Message: "Pages per URL",
				Default: strconv.Itoa(s.pages),
			},
			Validate: validatePages,
		},
	}

	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	mode, err := extract.ParseMode(answers.Mode)
	if err != nil {
		return err
	}

	if mode.TakesFilter() {
		filter := &survey.Input{
			Message: "Filter",
			Help:    "fuzzy: terms separated by | or ,\nregex: a regular expression matched with a few typos allowed",
			Default: s.filter,
		}
		if err := survey.AskOne(filter, &answers.Filter, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if mode.Paginates() && !mode.SlugRelative() {
		if err := survey.AskOne(searchPrompt(s.search), &s.search); err != nil {
			return err
		}
		s.search = strings.TrimSpace(s.search)
	}

	s.seeds = harvest.Seeds(util.SplitLines(answers.Seeds))
	s.mode = mode
	s.filter = answers.Filter
	s.pages, _ = strconv.Atoi(strings.TrimSpace(answers.Pages))
	return nil
}
