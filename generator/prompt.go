package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message pair sent to the LLM, plus per-call sampling knobs.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// BuildContentPrompt builds the prompt for the post body.
func BuildContentPrompt(topic string, minWords, maxWords int) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a professional blog writer. Write engaging, informative, and well-structured blog posts. ")
	sb.WriteString("Include an introduction, main body with clear points, and a conclusion. ")
	sb.WriteString("Write in a conversational yet professional tone. ")
	sb.WriteString(fmt.Sprintf("Make the content approximately %d-%d words.", minWords, maxWords))

	return Prompt{
		System:      sb.String(),
		User:        fmt.Sprintf("Write a comprehensive blog post about: %s. Include practical insights and real-world examples.", topic),
		Temperature: 0.7,
		MaxTokens:   1200,
	}
}

// BuildTitlePrompt builds the prompt for the post title.
func BuildTitlePrompt(topic string) Prompt {
	return Prompt{
		System:      "You are a creative title writer. Create catchy, engaging blog titles that would attract readers.",
		User:        fmt.Sprintf("Create an engaging blog post title for this topic: %s", topic),
		Temperature: 0.8,
		MaxTokens:   100,
	}
}

// BuildImagePrompt builds the illustration prompt for a topic.
func BuildImagePrompt(topic string) string {
	return fmt.Sprintf("A modern, professional illustration representing %s. Clean, minimalist design with vibrant colors, suitable for a blog post header.", topic)
}
