package config

const (
	// DefaultDatabasePath is the default path for the word library database
	DefaultDatabasePath = "./wordly.db"

	// DefaultDictionaryBaseURL is the Free Dictionary API entries endpoint for English
	DefaultDictionaryBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
)
