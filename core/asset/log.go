package asset

import "github.com/btcsuite/btclog"

var log = btclog.Disabled

// UseLogger sets the package logger. Transfer decoding reports why a
// transaction was not recognized at the trace level.
func UseLogger(logger btclog.Logger) {
	log = logger
}

func DisableLog() {
	UseLogger(btclog.Disabled)
}
