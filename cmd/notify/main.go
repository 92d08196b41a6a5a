package main

import "github.com/modernice/notify/cli"

func main() {
	cli.Main()
}
