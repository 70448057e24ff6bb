package main

import "github.com/jhoicas/gymdesk-api/internal/interfaces/cli"

func main() {
	cli.Execute()
}
