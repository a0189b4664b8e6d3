// Command dayctl inspects and exercises day/night profiles without a window.
//
//	dayctl validate PROFILE
//	dayctl table PROFILE
//	dayctl simulate [-start H] [-duration S] [-step S] [-every N] PROFILE
//	dayctl solar -lat LAT -lng LNG [-date YYYY-MM-DD] [-out FILE] PROFILE
package main

import (
	"fmt"
	"os"

	"daynight-engine/logging"
)

func main() {
	logger := logging.New(os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))
	if err := dispatch(os.Args[1:], os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "dayctl: %v\n", err)
		os.Exit(1)
	}
}
