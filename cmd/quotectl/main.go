package main

import "github.com/quotekit/backend/cmd/quotectl/commands"

func main() {
	commands.Execute()
}
