package config

const (
	// DefaultDatabasePath is the default path for the quote book database
	DefaultDatabasePath = "./quotebook.db"

	// DefaultSyncSchedule polls the remote source every 20 seconds
	DefaultSyncSchedule = "@every 20s"

	// DefaultSyncURL is the placeholder resource whose title becomes a quote
	DefaultSyncURL = "https://jsonplaceholder.typicode.com/posts/1"

	// DefaultPublishURL is the collection new quotes are posted to
	DefaultPublishURL = "https://jsonplaceholder.typicode.com/posts"
)
