package main

import "habittracker/internal/cli"

func main() {
	cli.Execute()
}
