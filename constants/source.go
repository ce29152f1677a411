package constants

import "time"

// Digit Source Defaults
const (
	// PiAPIURL serves {"content": "<digits>"} for ?start=N&numberOfDigits=M
	PiAPIURL = "https://api.pi.delivery/v1/pi"

	// FetchTimeout bounds one fetch including retries
	FetchTimeout = 10 * time.Second

	FetchMaxAttempts    = 4
	FetchInitialBackoff = 200 * time.Millisecond
	FetchMaxBackoff     = 2 * time.Second
)

// Source kinds accepted by configuration
const (
	SourceHTTP   = "http"
	SourceStatic = "static"
)
