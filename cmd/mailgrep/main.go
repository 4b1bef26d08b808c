package main

import "github.com/ndang/mailgrep/internal/cli"

func main() {
	cli.Execute()
}
