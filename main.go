// svcparams manages the service parameters a 3-D Secure 2 SDK reads at
// initialization.
package main

import (
	"fmt"
	"os"

	"svcparams/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
