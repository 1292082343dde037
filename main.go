package main

import "github.com/atikulmunna/prettylog/internal/cmd"

func main() {
	cmd.Execute()
}
