package generator

import (
	"fmt"
	"strings"
)

// FallbackPost builds the static substitute used when the provider is down
// or out of quota. It references the selected topic and satisfies the same
// shape invariants as generated posts.
func FallbackPost(topic string, tags []string) Post {
	lower := strings.ToLower(topic)

	var sb strings.Builder
	sb.WriteString("Welcome to another insightful post from DailyMuse! Today, we're exploring an important topic that affects many of us in our daily lives.\n\n")
	sb.WriteString("## Introduction\n\n")
	sb.WriteString(fmt.Sprintf("In today's fast-paced world, it's essential to take a step back and reflect on the changes happening around us. This post dives into %s and offers practical insights you can apply immediately.\n\n", lower))
	sb.WriteString("## Key Insights\n\n")
	sb.WriteString("- **Mindful Approach:** Taking time to understand the core principles\n")
	sb.WriteString("- **Practical Application:** Real-world strategies that work\n")
	sb.WriteString("- **Long-term Vision:** Building sustainable practices for the future\n")
	sb.WriteString("- **Community Impact:** How these changes affect others around us\n\n")
	sb.WriteString("> \"Success is not final, failure is not fatal: it is the courage to continue that counts.\" - Winston Churchill\n\n")
	sb.WriteString("## Taking Action\n\n")
	sb.WriteString("The most important part of any learning is implementation. Here are some practical steps you can take today:\n\n")
	sb.WriteString("1. Start with small, manageable changes\n")
	sb.WriteString("2. Track your progress consistently\n")
	sb.WriteString("3. Seek feedback from trusted mentors or peers\n")
	sb.WriteString("4. Adjust your approach based on results\n")
	sb.WriteString("5. Celebrate small wins along the way\n\n")
	sb.WriteString("## Final Thoughts\n\n")
	sb.WriteString("Remember, every expert was once a beginner. The journey of growth and improvement is ongoing, and each step forward is valuable progress.\n\n")
	sb.WriteString(fmt.Sprintf("What are your thoughts on %s? Share your experiences in the comments below!\n", lower))

	return Post{
		Title:    fmt.Sprintf("%s - Daily Inspiration", topic),
		Body:     sb.String(),
		Tags:     tags,
		Fallback: true,
	}
}
