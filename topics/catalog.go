// Package topics holds the topic catalog, the per-run topic selector, and
// the tag derivation used to label published posts.
package topics

// DefaultTags are attached to every post unless the config overrides them.
var DefaultTags = []string{"technology", "ai", "innovation", "future", "automation"}

var defaultCatalog = []string{
	"The future of artificial intelligence in everyday life",
	"How remote work is reshaping the modern workplace",
	"The rise of sustainable technology and green innovation",
	"Digital transformation in healthcare: opportunities and challenges",
	"The evolution of cybersecurity in the digital age",
	"Blockchain technology beyond cryptocurrency",
	"The impact of social media on mental health and society",
	"Climate change solutions through technology",
	"The future of education with AI and virtual reality",
	"Data privacy in the age of big data",
	"The gig economy and the future of work",
	"Smart cities and urban technology integration",
	"The psychology of user experience design",
	"Automation and the changing job market",
	"The role of technology in combating social inequality",
	"Virtual reality and its applications beyond gaming",
	"The importance of digital literacy in modern society",
	"Sustainable living with smart home technology",
	"The ethics of artificial intelligence development",
	"How machine learning is revolutionizing industries",
}

// Default returns a copy of the built-in topic catalog.
func Default() []string {
	out := make([]string, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}
