package main

import "github.com/andrescamacho/sc-commander/internal/adapters/cli"

func main() {
	cli.Execute()
}
