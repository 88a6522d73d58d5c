// Package log routes the package loggers of this module to one
// btclog backend. Library packages are silent until Setup is called.
package log

import (
	"io"
	"sort"
	"sync"

	"github.com/btcsuite/btclog"

	"github.com/user00000001/tesrasdk-go/core/asset"
	"github.com/user00000001/tesrasdk-go/core/rpcclient"
	"github.com/user00000001/tesrasdk-go/core/txbuilder"
	"github.com/user00000001/tesrasdk-go/errors"
)

// ErrBadLevel is returned for level names btclog does not know.
var ErrBadLevel = errors.Derive(errors.ErrInvalidParams, "unknown log level")

// Subsystem tags.
const (
	TagSign  = "SIGN"
	TagRPC   = "RPCC"
	TagAsset = "ASST"
)

var subsystems = map[string]func(btclog.Logger){
	TagSign:  txbuilder.UseLogger,
	TagRPC:   rpcclient.UseLogger,
	TagAsset: asset.UseLogger,
}

var (
	mu      sync.Mutex // protects the following
	backend *btclog.Backend
	loggers = make(map[string]btclog.Logger)
)

// Setup sends every subsystem's output to w at the given level
// ("trace", "debug", "info", "warn", "error", "critical", "off").
// It may be called again to switch writers.
func Setup(w io.Writer, level string) error {
	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		return errors.WithDetailf(ErrBadLevel, "%q", level)
	}
	mu.Lock()
	defer mu.Unlock()
	backend = btclog.NewBackend(w)
	loggers = make(map[string]btclog.Logger)
	for tag, use := range subsystems {
		l := backend.Logger(tag)
		l.SetLevel(lvl)
		loggers[tag] = l
		use(l)
	}
	return nil
}

// SetLevels changes the level of every logger created so far.
func SetLevels(level string) error {
	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		return errors.WithDetailf(ErrBadLevel, "%q", level)
	}
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		l.SetLevel(lvl)
	}
	return nil
}

// Logger returns the logger for tag, creating it at the info level
// if tag is not a library subsystem. Before Setup it is disabled.
func Logger(tag string) btclog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if backend == nil {
		return btclog.Disabled
	}
	l, ok := loggers[tag]
	if !ok {
		l = backend.Logger(tag)
		l.SetLevel(btclog.LevelInfo)
		loggers[tag] = l
	}
	return l
}

// Tags lists the subsystem tags in sorted order.
func Tags() []string {
	tags := make([]string, 0, len(subsystems))
	for tag := range subsystems {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
