package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dailymuse/config"
	"dailymuse/formatter"
)

var previewDir string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate today's post into a Medium-ready file instead of publishing",
	RunE:  previewAction,
}

func previewAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	b, err := buildComposer(cfg)
	if err != nil {
		return err
	}

	post, err := b.Compose(cmd.Context())
	if err != nil {
		return err
	}

	name := fmt.Sprintf("medium_post_%s.md", time.Now().Format("20060102_150405"))
	path := filepath.Join(previewDir, name)
	if err := os.WriteFile(path, []byte(previewFile(post)), 0o644); err != nil {
		return fmt.Errorf("save preview: %w", err)
	}

	log.Info().Str("path", path).Msg("saved medium-ready post")
	fmt.Println(path)
	return nil
}

// previewFile renders the post plus the notes a human needs to paste it into
// the Medium editor by hand.
func previewFile(post formatter.Post) string {
	tags := post.Tags
	if len(tags) > 5 {
		tags = tags[:5]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", post.Title))
	sb.WriteString(post.Markdown)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("**Tags for Medium:** %s\n", strings.Join(tags, ", ")))
	sb.WriteString(fmt.Sprintf("**Estimated reading time:** %d min read\n\n", formatter.ReadingTime(post.Markdown)))
	sb.WriteString(`---

**Instructions for posting to Medium:**
1. Copy the content above
2. Go to https://medium.com/new-story
3. Paste the title and content
4. Add the suggested tags
5. Preview and publish!
`)
	return sb.String()
}

func init() {
	previewCmd.Flags().StringVar(&previewDir, "dir", ".", "directory for the generated file")
	rootCmd.AddCommand(previewCmd)
}
