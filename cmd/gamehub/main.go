package main

import "github.com/gamehub/gamehub-go/internal/cli"

func main() {
	cli.Execute()
}
