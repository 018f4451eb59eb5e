package main

import (
	"os"

	"matchday.fit/fixturecast/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
