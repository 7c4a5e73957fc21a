package main

import "github.com/soar/inputnav/internal/cli"

func main() {
	cli.Execute(getFrontendFS())
}
