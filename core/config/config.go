// Package config holds the network endpoints and gas defaults used
// by the command-line tools and the REST client.
package config

import (
	"net/url"
	"time"

	"github.com/kr/env"

	"github.com/user00000001/tesrasdk-go/errors"
)

var (
	ErrBadNetwork = errors.Derive(errors.ErrInvalidParams, "unknown network")
	ErrBadConfig  = errors.Derive(errors.ErrInvalidParams, "invalid configuration")
)

// Config is an immutable set of client settings.
type Config struct {
	Network  string
	RESTURL  string
	RPCURL   string
	WSURL    string
	GasPrice uint64
	GasLimit uint64
	Timeout  time.Duration
}

const (
	restPort = "25770"
	wsPort   = "25771"
	rpcPort  = "25768"

	defaultGasPrice = 500
	defaultGasLimit = 20000
	defaultTimeout  = 10 * time.Second
)

func preset(network, host string) Config {
	return Config{
		Network:  network,
		RESTURL:  "http://" + host + ":" + restPort,
		RPCURL:   "http://" + host + ":" + rpcPort,
		WSURL:    "ws://" + host + ":" + wsPort,
		GasPrice: defaultGasPrice,
		GasLimit: defaultGasLimit,
		Timeout:  defaultTimeout,
	}
}

var (
	MainNet  = preset("main", "dapp3.tesra.me")
	TestNet  = preset("test", "dapp4.tesra.me")
	LocalNet = preset("local", "127.0.0.1")
)

// Preset returns the settings of a named network.
func Preset(network string) (Config, error) {
	switch network {
	case MainNet.Network:
		return MainNet, nil
	case TestNet.Network:
		return TestNet, nil
	case LocalNet.Network:
		return LocalNet, nil
	}
	return Config{}, errors.WithDetailf(ErrBadNetwork, "%q", network)
}

// Environment variables read by Load.
var (
	network  = env.String("TESRA_NETWORK", TestNet.Network)
	restURL  = env.String("TESRA_REST_URL", "")
	rpcURL   = env.String("TESRA_RPC_URL", "")
	wsURL    = env.String("TESRA_WS_URL", "")
	gasPrice = env.Int("TESRA_GAS_PRICE", -1)
	gasLimit = env.Int("TESRA_GAS_LIMIT", -1)
	timeout  = env.Duration("TESRA_HTTP_TIMEOUT", 0)
)

// Load starts from the preset named by TESRA_NETWORK and applies
// the other TESRA_ variables that are set. Malformed numbers make
// env.Parse exit the process, the way flag parsing does.
func Load() (Config, error) {
	*network, *restURL, *rpcURL, *wsURL = TestNet.Network, "", "", ""
	*gasPrice, *gasLimit, *timeout = -1, -1, 0
	env.Parse()

	c, err := Preset(*network)
	if err != nil {
		return Config{}, err
	}
	if *restURL != "" {
		c.RESTURL = *restURL
	}
	if *rpcURL != "" {
		c.RPCURL = *rpcURL
	}
	if *wsURL != "" {
		c.WSURL = *wsURL
	}
	if *gasPrice >= 0 {
		c.GasPrice = uint64(*gasPrice)
	}
	if *gasLimit >= 0 {
		c.GasLimit = uint64(*gasLimit)
	}
	if *timeout > 0 {
		c.Timeout = *timeout
	}
	return c, c.Validate()
}

// Validate checks that the endpoints are absolute URLs and the gas
// limit is set.
func (c Config) Validate() error {
	for _, u := range []struct{ name, val string }{
		{"REST", c.RESTURL},
		{"RPC", c.RPCURL},
		{"WS", c.WSURL},
	} {
		if u.val == "" {
			return errors.WithDetailf(ErrBadConfig, "empty %s endpoint", u.name)
		}
		parsed, err := url.Parse(u.val)
		if err != nil || !parsed.IsAbs() || parsed.Host == "" {
			return errors.WithDetailf(ErrBadConfig, "%s endpoint %q is not an absolute URL", u.name, u.val)
		}
	}
	if c.GasLimit == 0 {
		return errors.WithDetail(ErrBadConfig, "zero gas limit")
	}
	if c.Timeout <= 0 {
		return errors.WithDetail(ErrBadConfig, "timeout must be positive")
	}
	return nil
}
