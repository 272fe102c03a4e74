// file: main.go
// version: 2.0.0
// guid: d8868eb4-cdce-49a6-bc53-c119f99a149a

package main

import (
	"fmt"
	"os"

	"github.com/jdfalk/bookshelf/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
