package main

import (
	"os"

	"github.com/geopulse/timeline/app"
	"github.com/geopulse/timeline/report"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		report.Quit(err)
	}
}
