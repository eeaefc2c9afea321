// tsadjust - Transcript Timestamp Adjuster
//
// tsadjust shifts every timestamp in a plain-text transcript by a fixed
// number of seconds and leaves the rest of each line untouched.
package main

import (
	"os"

	"github.com/ccollicutt/tsadjust/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
