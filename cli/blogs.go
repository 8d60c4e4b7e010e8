package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dailymuse/config"
	"dailymuse/publisher"
)

var blogsCmd = &cobra.Command{
	Use:   "blogs",
	Short: "List the Blogger blogs the authorized account can post to",
	RunE:  blogsAction,
}

func blogsAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	blogs, err := listBlogs(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	printBlogs(blogs)
	return nil
}

// listBlogs builds a Blogger publisher from cfg and asks it for the
// account's blogs. It works with either auth style.
func listBlogs(ctx context.Context, cfg *config.Config) ([]publisher.BlogInfo, error) {
	hasOAuth := cfg.Blogger.ClientID != "" && cfg.Blogger.ClientSecret != ""
	if !hasOAuth && cfg.Blogger.APIKey == "" {
		return nil, fmt.Errorf("blogger credentials missing; set %s/%s or %s",
			cfg.Blogger.ClientIDEnv, cfg.Blogger.ClientSecretEnv, cfg.Blogger.APIKeyEnv)
	}

	scoped := *cfg
	scoped.Destination = "blogger"
	pub, err := publisher.New(ctx, &scoped)
	if err != nil {
		return nil, err
	}
	b, ok := pub.(*publisher.Blogger)
	if !ok {
		return nil, fmt.Errorf("unexpected publisher type %T", pub)
	}
	return b.ListBlogs(ctx)
}

func printBlogs(blogs []publisher.BlogInfo) {
	if len(blogs) == 0 {
		fmt.Println("No blogs found on this account.")
		return
	}
	fmt.Println("Blogs on this account:")
	for _, blog := range blogs {
		fmt.Printf("  %s  %s  %s\n", blog.ID, blog.Name, blog.URL)
	}
	fmt.Println("\nPut the blog id into blogger.blog_id in your config.")
}

func init() {
	rootCmd.AddCommand(blogsCmd)
}
