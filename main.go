package main

import "github.com/shulechat/client/cli"

func main() {
	cli.Execute()
}
