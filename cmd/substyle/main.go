package main

import "github.com/substyle/substyle/internal/cli/cmd"

func main() {
	cmd.Execute()
}
