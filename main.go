package main

import (
	"os"

	"github.com/kuwabara/MUBench/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
