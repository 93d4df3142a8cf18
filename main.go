// countdown is a terminal countdown and count-up timer.
package main

import (
	"fmt"
	"os"

	"github.com/dashed/countdown/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
