package cmd

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pagelinks/pagelinks/filesystem"
	"github.com/pagelinks/pagelinks/harvest"
	"github.com/pagelinks/pagelinks/util"
)

// readSeeds reads one seed URL per line. Lines starting with # are comments.
func readSeeds(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return harvest.Seeds(lines), scanner.Err()
}

// collectSeeds gathers seeds from args and the seeds file, falling back to
// stdin when nothing else was given and stdin is piped.
func collectSeeds(args []string, file string, stdin *os.File) ([]string, error) {
	seeds := harvest.Seeds(args)

	if file != "" {
		f, err := filesystem.API().Open(file)
		if err != nil {
			return nil, err
		}
		defer util.Ignore(f.Close)

		fromFile, err := readSeeds(f)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, fromFile...)
	}

	if len(seeds) == 0 && stdin != nil && !util.IsTerminal(stdin) {
		return readSeeds(stdin)
	}

	return seeds, nil
}
