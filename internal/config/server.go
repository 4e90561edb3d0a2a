package config

import "time"

type Server struct {
	Addr          string        `env:"HTTP_ADDR" envDefault:":8080"`
	ProbeAddr     string        `env:"PROBE_ADDR" envDefault:":8091"`
	MetricsAddr   string        `env:"METRICS_ADDR" envDefault:":9090"`
	DealsCacheTTL time.Duration `env:"DEALS_CACHE_TTL" envDefault:"60s"`
}
