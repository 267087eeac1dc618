// The satrackctl command sends Simple Analytics pageviews and events from
// the command line.
package main

import (
	"github.com/joho/godotenv"

	"github.com/wrale/wrale-analytics/internal/satrackctl/cmd"
)

func main() {
	// A missing .env file is not an error
	_ = godotenv.Load()

	cmd.Execute()
}
