package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/tray-greenness-mcp/internal/config"
	"github.com/ironsheep/tray-greenness-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("tray-greenness-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("tray-greenness-mcp - MCP server scoring plant greenness per well of a 4x6 tray")
			fmt.Println()
			fmt.Println("Usage: tray-greenness-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  TRAY_MCP_LOG_LEVEL=debug     Enable debug logging of every pipeline stage")
			fmt.Println("  TRAY_MCP_CONFIG=<file>       JSON file with analysis parameters")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("TRAY_MCP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Tray Greenness MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	cfg, err := config.Load(os.Getenv("TRAY_MCP_CONFIG"))
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if debug {
		log.Printf("Config: %+v", *cfg)
	}

	srv := server.New(cfg)
	srv.SetDebug(debug)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
