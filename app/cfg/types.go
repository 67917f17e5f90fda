package cfg

type Cfg struct {
	// Recording configuration
	ConfigPath string
	OutputPath string
	FetchDelay int // seconds
	Timeout    int // seconds

	// Daemon configuration
	Serve    bool
	Interval int // seconds
	Port     string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
