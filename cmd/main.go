package main

import (
	"os"

	"imuplot/cli"
	"imuplot/views/window"
)

func main() {
	os.Exit(cli.Execute(window.Display{}))
}
