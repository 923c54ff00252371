package core

// Config holds the workflow tunables. It is built once at startup and
// threaded into every component at construction; nothing reads it from
// ambient global state.
type Config struct {
	// RouterMessagesToAnalyze is the size of the recency window handed to
	// the router for classification.
	RouterMessagesToAnalyze int

	// SummaryTrigger is the message count above which a turn ends with
	// summarization.
	SummaryTrigger int

	// MessagesAfterSummary is how many trailing messages survive pruning
	// after a summarization.
	MessagesAfterSummary int

	// CharacterName is the companion's name, used in synthetic context
	// messages such as the image-attachment note.
	CharacterName string

	// ImageDir is where generated image artifacts are written.
	ImageDir string
}

// DefaultConfig returns the standard tunables.
func DefaultConfig() *Config {
	return &Config{
		RouterMessagesToAnalyze: 5,
		SummaryTrigger:          20,
		MessagesAfterSummary:    5,
		CharacterName:           "Ava",
		ImageDir:                "generated_images",
	}
}
