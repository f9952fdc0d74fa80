package main

import "github.com/theirongolddev/allowance/cmd"

func main() {
	cmd.Execute()
}
