package telemetry

// Config controls the trace pipeline.
type Config struct {
	// Enabled turns the OTLP exporter on. When false, Init installs a
	// no-op tracer.
	Enabled bool

	// ServiceName and ServiceVersion identify this process in the trace
	// backend.
	ServiceName    string
	ServiceVersion string

	// Endpoint is the OTLP/gRPC collector address, host:port.
	Endpoint string

	// Insecure disables TLS on the collector connection.
	Insecure bool

	// SampleRate is the fraction of traces to keep, 0.0 through 1.0.
	SampleRate float64
}

// DefaultConfig returns the local-development defaults: disabled, with a
// collector assumed on the default OTLP port.
func DefaultConfig() Config {
	return Config{
		Enabled:        false,
		ServiceName:    "quill",
		ServiceVersion: "dev",
		Endpoint:       "localhost:4317",
		Insecure:       true,
		SampleRate:     1.0,
	}
}
