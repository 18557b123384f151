package main

import (
	"fmt"
	"log"
	"os"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout carries prompts and MCP traffic)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if debugEnabled() {
		log.Printf("ppmedit v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// debugEnabled reports whether PPMEDIT_LOG_LEVEL asks for debug logging.
func debugEnabled() bool {
	return os.Getenv("PPMEDIT_LOG_LEVEL") == "debug"
}
