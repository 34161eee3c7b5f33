package main

import "github.com/alexandercampbell/rust-cc/cmd"

func main() {
	cmd.Execute()
}
