package main

import (
	"errors"
	"os"

	"github.com/nvr-ai/go-raster/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		exitCodeError := &cmd.ExitCodeError{}
		if errors.As(err, &exitCodeError) {
			os.Exit(exitCodeError.ExitCode())
		} else {
			os.Exit(cmd.ExitCodeUnknownError)
		}
	}
}
