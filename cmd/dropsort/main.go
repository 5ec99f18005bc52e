package main

import (
	"fmt"
	"os"

	"github.com/dropsort/dropsort/pkg/style"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		os.Exit(1)
	}
}
