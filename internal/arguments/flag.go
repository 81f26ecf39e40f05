package arguments

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

var NatsURL string
var APIURL string
var HPServer string
var UserID string
var AuthToken string
var PostgresDSN string
var CacheSize int
var CacheTimeLimitSecs int
var FetchTimeoutSecs int

type EnvConfig struct {
	NatsURL            string `env:"NATS_URL"`
	APIURL             string `env:"API_URL"`
	HPServer           string `env:"HTTP_URL"`
	UserID             string `env:"USER_ID"`
	AuthToken          string `env:"AUTH_TOKEN"`
	PostgresDSN        string `env:"POSTGRES_DSN"`
	CacheSize          int    `env:"CACHE_SIZE"`
	CacheTimeLimitSecs int    `env:"CACHE_LIMIT_SECS"`
	FetchTimeoutSecs   int    `env:"FETCH_TIMEOUT_SECS"`
}

func ParseArgs() error {
	var cfg EnvConfig
	err := env.Parse(&cfg)
	if err != nil {
		return fmt.Errorf("Problem with parsing of env variables: %w", err)
	}
	n := flag.String("n", "0.0.0.0:4222", "Nats <host>:<port> to connect")
	a := flag.String("a", "http://0.0.0.0:8000", "Base url of the remote order store")
	s := flag.String("s", "0.0.0.0:8000", "Http <host>:<port> to serve on")
	u := flag.String("u", "", "User id of the session")
	t := flag.String("t", "", "Auth token of the session")
	d := flag.String("d", "", "Postgres dsn, in-memory store is used when empty")
	cs := flag.Int("cs", 5, "Cache max capacity")
	ctl := flag.Int("ctl", 5, "Cache time limit on value in the table")
	ft := flag.Int("ft", 10, "Timeout in seconds for order re-fetch calls")
	flag.Parse()
	if n != nil {
		NatsURL = *n
	}
	if a != nil {
		APIURL = *a
	}
	if s != nil {
		HPServer = *s
	}
	if u != nil {
		UserID = *u
	}
	if t != nil {
		AuthToken = *t
	}
	if d != nil {
		PostgresDSN = *d
	}
	if cs != nil {
		CacheSize = *cs
	}
	if ctl != nil {
		CacheTimeLimitSecs = *ctl
	}
	if ft != nil {
		FetchTimeoutSecs = *ft
	}
	if cfg.NatsURL != "" {
		NatsURL = cfg.NatsURL
	}
	if cfg.APIURL != "" {
		APIURL = cfg.APIURL
	}
	if cfg.HPServer != "" {
		HPServer = cfg.HPServer
	}
	if cfg.UserID != "" {
		UserID = cfg.UserID
	}
	if cfg.AuthToken != "" {
		AuthToken = cfg.AuthToken
	}
	if cfg.PostgresDSN != "" {
		PostgresDSN = cfg.PostgresDSN
	}
	if cfg.CacheSize != 0 {
		CacheSize = cfg.CacheSize
	}
	if cfg.CacheTimeLimitSecs != 0 {
		CacheTimeLimitSecs = cfg.CacheTimeLimitSecs
	}
	if cfg.FetchTimeoutSecs != 0 {
		FetchTimeoutSecs = cfg.FetchTimeoutSecs
	}
	fmt.Println("Http host:", HPServer)
	fmt.Println("Nats host:", NatsURL)
	fmt.Println("Api url:", APIURL)
	fmt.Printf("Cache max size: %d\n", CacheSize)
	fmt.Printf("Cache limit on time in seconds: %d\n", CacheTimeLimitSecs)
	fmt.Printf("Fetch timeout in seconds: %d\n", FetchTimeoutSecs)
	return nil
}
