package cfg

type Cfg struct {
	// Storage configuration
	DataDir   string
	StateFile string
	DigestDir string

	// Subject configuration
	SubjectFile string
	NewsAPIKey  string

	// Run configuration
	Output   string
	Timeout  int
	Schedule string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
