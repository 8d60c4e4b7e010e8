package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dailymuse/config"
	"dailymuse/oauth"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Authorize Blogger access and save the token file",
	Long:  "setup walks the Google OAuth consent flow once, saves the refreshable token next to the config, and lists the blogs the account can post to.",
	RunE:  setupAction,
}

func setupAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Blogger.ClientID == "" || cfg.Blogger.ClientSecret == "" {
		return fmt.Errorf("blogger oauth client missing; set %s and %s", cfg.Blogger.ClientIDEnv, cfg.Blogger.ClientSecretEnv)
	}

	ctx := cmd.Context()
	conf := oauth.NewConfig(cfg.Blogger.ClientID, cfg.Blogger.ClientSecret, "")

	tok, err := oauth.Authorize(ctx, conf, os.Stdout)
	if err != nil {
		return fmt.Errorf("authorize: %w", err)
	}
	if err := oauth.SaveToken(cfg.Blogger.TokenFile, tok); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	log.Info().Str("path", cfg.Blogger.TokenFile).Msg("saved blogger token")

	blogs, err := listBlogs(ctx, cfg)
	if err != nil {
		// The token is saved; blog listing failing is not worth redoing
		// the consent dance for.
		log.Warn().Err(err).Msg("could not list blogs")
		return nil
	}
	printBlogs(blogs)
	return nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
