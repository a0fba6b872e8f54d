package log_test

import (
	"fmt"

	"github.com/SathemBite/tx-engine-example/txengine/log"
)

func ExampleParseLevel() {
	level, err := log.ParseLevel("warning")

	fmt.Println(err == nil)
	fmt.Println(level)

	// Output:
	// true
	// warn
}
