package v1

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	configPath  string
	userID      string
	memoryPath  string
	dotfilesDir string
	noJournal   bool
	noRedaction bool
}

// WithConfigPath loads configuration from the given file instead of the
// default location.
func WithConfigPath(path string) Option {
	return func(c *clientConfig) {
		c.configPath = path
	}
}

// WithUserID selects the memory partition.
func WithUserID(id string) Option {
	return func(c *clientConfig) {
		c.userID = id
	}
}

// WithMemoryPath sets where the vector store persists.
func WithMemoryPath(path string) Option {
	return func(c *clientConfig) {
		c.memoryPath = path
	}
}

// WithDotfilesDir points drift and history operations at a repository.
func WithDotfilesDir(dir string) Option {
	return func(c *clientConfig) {
		c.dotfilesDir = dir
	}
}

// WithoutJournal disables the git audit trail.
func WithoutJournal() Option {
	return func(c *clientConfig) {
		c.noJournal = true
	}
}

// WithoutRedaction stores text verbatim, skipping the secrets scan.
func WithoutRedaction() Option {
	return func(c *clientConfig) {
		c.noRedaction = true
	}
}
