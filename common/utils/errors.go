package utils

import (
	"fmt"
	"log"

	"github.com/ttacon/chalk"
)

// Check panics with msg when err is non nil. Reserved for startup wiring
// where a failed dependency leaves the server with nothing to run.
func Check(err error, msg string) {
	if err != nil {
		fmt.Print(chalk.Red)
		log.Print(msg, chalk.Reset)
		log.Panicln(err)
	}
}

// Assert panics with msg when ok is false. Guards invariants that code
// further down would otherwise trip over silently, like a preset file
// missing the unit types the spawner is about to instantiate.
func Assert(ok bool, msg string) {
	if !ok {
		fmt.Print(chalk.Red)
		log.Print(msg, chalk.Reset)
		log.Panic()
	}
}
