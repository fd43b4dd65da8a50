package main

import "traloc/internal/cli"

func main() {
	cli.Execute()
}
