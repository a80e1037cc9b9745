package main

import "github.com/mcoot/homeworlds-go/internal/cli"

func main() {
	cli.Execute()
}
