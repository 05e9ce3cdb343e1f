package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"runcoach/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		fmt.Printf("Config ready at %s/config.json\n", dir)
		fmt.Println("Review the llm section if you want model-written weekly explanations.")
		return nil
	},
}
