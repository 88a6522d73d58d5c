package rpcclient

import "github.com/btcsuite/btclog"

var log = btclog.Disabled

// UseLogger sets the package logger. It is called by the log package
// during setup.
func UseLogger(logger btclog.Logger) {
	log = logger
}

func DisableLog() {
	UseLogger(btclog.Disabled)
}
