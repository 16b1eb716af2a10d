package main

import "github.com/aexvir/zed-text-language-server/internal/cli"

func main() {
	cli.Execute()
}
