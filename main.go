package main

import (
	"github.com/pagelinks/pagelinks/cmd"
	"github.com/pagelinks/pagelinks/config"
	"github.com/pagelinks/pagelinks/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
