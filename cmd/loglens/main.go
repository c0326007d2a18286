// LogLens - Log Level Distribution Tool
//
// LogLens reads a log file, filters entries by message text and time range,
// and reports how many entries there are per log level.
package main

import (
	"os"

	"github.com/ccollicutt/loglens/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
