package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dailymuse/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate today's post and publish it",
	RunE:  runAction,
}

func runAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.CheckDestination(); err != nil {
		return err
	}

	ctx := cmd.Context()
	b, err := buildBot(ctx, cfg)
	if err != nil {
		return err
	}

	res, err := b.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(res.URL)
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}
