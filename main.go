package main

import (
	"os"

	"github.com/Lelasalasad/new-drisavo/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
