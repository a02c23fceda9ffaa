package scoring

// Config holds scoring settings.
type Config struct {
	Bands Bands
}

// DefaultConfig returns the default placement bands.
func DefaultConfig() Config {
	return Config{Bands: DefaultBands()}
}

// ConfigFromFile loads bands from path, falling back to the defaults when
// path is empty.
func ConfigFromFile(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	bands, err := LoadBands(path)
	if err != nil {
		return Config{}, err
	}
	return Config{Bands: bands}, nil
}
