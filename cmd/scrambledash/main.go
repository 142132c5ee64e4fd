package main

import "github.com/dashgames/scrambledash/internal/cli"

func main() {
	cli.Execute()
}
