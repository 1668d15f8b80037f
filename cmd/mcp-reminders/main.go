// Command mcp-reminders provides an MCP server for task/reminder management.
//
// Reminders live in lists backed by a SQLite store. On top of the real lists
// the server synthesizes read-only smart lists (All, Today, Scheduled,
// Flagged, Completed, Overdue) and persists tags and geofence locations by
// packing them into each reminder's notes field.
//
// Usage:
//
//	./mcp-reminders          # Start MCP server (stdio)
//	./mcp-reminders --help   # Show help
//
// Environment:
//
//	REMINDERS_DB_PATH    Path to SQLite database (default: ~/.mcp-reminders/reminders.db)
//	REMINDERS_LOG_LEVEL  zerolog level (default: info)
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/notexe/mcp-reminders/internal/config"
	"github.com/notexe/mcp-reminders/internal/reminders"
	"github.com/notexe/mcp-reminders/internal/store/sqlitestore"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol stream; all logging goes to stderr.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	st, err := sqlitestore.Open(cfg.Store.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.EnsureDefaultList(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed default list: %v\n", err)
		os.Exit(1)
	}

	svc := reminders.NewService(st)
	s := reminders.NewServer(svc)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Reminders Server - Task/reminder management via MCP protocol

USAGE:
    mcp-reminders          Start MCP server (communicates via stdio)
    mcp-reminders --help   Show this help

ENVIRONMENT:
    REMINDERS_DB_PATH     Path to SQLite database file
                          Default: ~/.mcp-reminders/reminders.db
    REMINDERS_LOG_LEVEL   Log level (debug, info, warn, error)

CONFIG FILE:
    ~/.mcp-reminders/config.yaml
    store:
      path: /path/to/reminders.db
    log:
      level: info

TOOLS:
    get_lists          Get all lists, real and smart ('Smart: Today', ...)
    get_reminders      Get the reminders of a list (real or smart)
    create_reminder    Create a reminder (title, dueDate, notes, flagged,
                       priority, tags, location)
    get_tags           Get tags used in one list or across all lists
    set_attributes     Update flagged/priority/tags/location of a reminder
    complete_reminder  Mark a reminder as completed
    delete_reminder    Delete a reminder permanently

SMART LISTS:
    All, Today, Scheduled, Flagged, Completed, Overdue - read-only views
    computed across every real list. Address them by bare name ('today')
    or with the prefix ('Smart: Today').

CONFIGURATION (client side):
    {
      "mcpServers": {
        "reminders": {
          "command": "/path/to/mcp-reminders",
          "args": []
        }
      }
    }`)
}
