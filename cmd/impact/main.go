package main

import (
	"os"

	"github.com/wonny/sleep-impact/cmd/impact/commands"
)

// main is the entry point for the impact CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/impact [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
