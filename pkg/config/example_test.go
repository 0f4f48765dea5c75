package config_test

import (
	"fmt"

	"github.com/wonny/sleep-impact/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	// Access configuration values
	fmt.Printf("Environment: %s\n", cfg.Env)
	fmt.Printf("Data root: %s\n", cfg.Data.Root)
	fmt.Printf("Smoothing window: %d\n", cfg.Data.Window)
	fmt.Printf("Study file: %s\n", cfg.StudyFile)
}
