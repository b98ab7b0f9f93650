package main

import "shortsmith/internal/cli"

func main() {
	cli.Main()
}
