// Command promptcraft turns slash command templates into prompts.
package main

import (
	"os"

	"github.com/fsmiamoto/promptcraft/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
