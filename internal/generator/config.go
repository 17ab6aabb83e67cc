package generator

// Config drives the synthetic forensic-pattern generator.
type Config struct {
	NumAccounts          int
	NumBackgroundTx      int
	NumCycles            int
	NumSmurfingHubs      int
	NumShellChains       int
	Seed                 int64
}

// DefaultConfig returns baseline settings that embed a handful of each
// pattern kind alongside plain background traffic.
func DefaultConfig() Config {
	return Config{
		NumAccounts:     500,
		NumBackgroundTx: 5000,
		NumCycles:       5,
		NumSmurfingHubs: 5,
		NumShellChains:  5,
		Seed:            42,
	}
}
