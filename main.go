package main

import (
	"os"

	"github.com/botpanel/botpanel/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
