package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-e environment mode ("development" or "production")
//	-c/-config json file path with configs
//	-ratelimit-endpoint remote counter store base URL
//	-ratelimit-token remote counter store bearer token
//	-session-ttl session lifetime (e.g., "168h")
//	-sweep-interval expired-session sweep interval (e.g., "1h")
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var environment string
	var jsonConfigPath string
	var rateLimitEndpoint string
	var rateLimitToken string
	var sessionTTL time.Duration
	var sweepInterval time.Duration
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&environment, "e", "", "Environment mode (development|production)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&rateLimitEndpoint, "ratelimit-endpoint", "", "Rate limiter counter store URL")
	flag.StringVar(&rateLimitToken, "ratelimit-token", "", "Rate limiter counter store token")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Session lifetime (e.g., 168h)")
	flag.DurationVar(&sweepInterval, "sweep-interval", 0, "Expired-session sweep interval (e.g., 1h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Environment: Environment(environment),
			SessionTTL:  sessionTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		RateLimit: RateLimit{
			Endpoint: rateLimitEndpoint,
			Token:    rateLimitToken,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SweepInterval: sweepInterval,
		},
		Adapter:      Adapter{},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
