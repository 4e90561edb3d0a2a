package httpx

type Option func(*LoggingRoundTripper)

// WithLogFieldMaxLen caps dump length per log field. Affiliate feed responses
// run to megabytes, so the default is deliberately small.
func WithLogFieldMaxLen(logFieldMaxLen int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = logFieldMaxLen
	}
}

func WithSensitiveDataMasker(sensitiveDataMasker sensitiveDataMasker) Option {
	return func(rt *LoggingRoundTripper) {
		rt.sensitiveDataMasker = sensitiveDataMasker
	}
}
