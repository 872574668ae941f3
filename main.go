package main

import "github.com/mkhatkar/stockmitra/internal/cli"

func main() {
	cli.Run()
}
