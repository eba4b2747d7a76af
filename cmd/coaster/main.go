// Command coaster rides a track without a window. It reads a configuration
// from a TOML or YAML file given as argument (or uses the defaults), runs the
// configured number of ticks and writes the ride log as JSON to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/coaster"
)

func main() {
	cfg := coaster.DefaultConfig()
	if len(os.Args) > 1 {
		var err error
		if cfg, err = coaster.LoadConfig(os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "error reading configuration: %v\n", err)
			os.Exit(1)
		}
	}

	result, err := coaster.RunJSON(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulation error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(result)
}
