package main

import (
	"os"

	"github.com/elefit/tracker-backend/trackerservice"
)

func main() {
	if err := trackerservice.Run(); err != nil {
		os.Exit(1)
	}
}
