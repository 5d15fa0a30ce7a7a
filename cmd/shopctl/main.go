package main

import (
	"github.com/butiken/storefront/internal/cli"
)

func main() {
	cli.Execute()
}
