// Package main is the entry point for the Defeat the Evil Wizard battle game.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "wizardbattle",
	Short: "Defeat the Evil Wizard",
	Long: `A turn-based battle between a hero of your chosen class and the Evil Wizard.
Play interactively, simulate battles with Lua strategies, or list the classes.`,
	SilenceUsage: true,
}

func main() {
	// A missing .env file is normal; settings then come from the environment and config file.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file")
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(classesCmd)
}
