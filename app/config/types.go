package config

// Config represents the feed list configuration file
type Config struct {
	FeedURLs []string `yaml:"feed_urls"`
}
