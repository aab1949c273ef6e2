package main

import "github.com/edaqa/eda-cli/cmd"

func main() {
	cmd.Execute()
}
