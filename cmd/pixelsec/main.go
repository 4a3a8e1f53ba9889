package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	env := defaultEnv()
	cmd := newRootCmd(env)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(env.stderr, describe(err))
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}
