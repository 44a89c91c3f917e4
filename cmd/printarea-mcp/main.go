package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/printarea-mcp/internal/config"
	"github.com/ironsheep/printarea-mcp/internal/logging"
	"github.com/ironsheep/printarea-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// envConfig names an optional JSON config file.
const envConfig = "PRINTAREA_CONFIG"

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("printarea-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("printarea-mcp - MCP server for print-area calibration")
			fmt.Println()
			fmt.Println("Usage: printarea-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PRINTAREA_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  PRINTAREA_LOG_FILE=<path>    Log to a rotating file instead of stderr")
			fmt.Println("  PRINTAREA_CONFIG=<path>      JSON config with detection defaults")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	cfg := config.DefaultConfig()
	if path := os.Getenv(envConfig); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "printarea-mcp: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// stdout is for MCP protocol
	logOpts := logging.FromEnv()
	if logOpts.File == "" {
		logOpts.File = cfg.LogFile
	}
	closer := logging.Setup(logOpts)
	defer closer.Close()

	if logging.DebugEnabled() {
		log.Printf("Print Area MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
