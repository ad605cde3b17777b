package main

import (
	"github.com/andrescamacho/brazier-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
