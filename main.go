package main

import (
	"fmt"
	"os"

	"github.com/melodeck/melodeck/cmd"
	"github.com/melodeck/melodeck/config"
	"github.com/melodeck/melodeck/log"
	"github.com/samber/lo"
)

func main() {
	if err := config.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	lo.Must0(log.Setup())
	cmd.Execute()
}
