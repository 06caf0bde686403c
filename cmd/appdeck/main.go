package main

import "appdeck/internal/cli"

func main() {
	cli.Execute()
}
