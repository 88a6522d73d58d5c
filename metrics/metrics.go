// Package metrics provides metrics-related utilities.
// Defined metrics, for a Transport with Prefix p:
//
//	p.request (counter)
//	p.respcode.200 (counter)
//	p.respcode.NNN (etc)
//	p.transport.error (counter)
//
// Other packages add their own counters by name; Snapshot reports
// all of them.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/codahale/metrics"
)

// Transport counts requests and response codes in metrics.
// See the package doc for metric names.
type Transport struct {
	Base   http.RoundTripper // nil means http.DefaultTransport
	Prefix string
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	metrics.Counter(t.name("request")).Add()
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		metrics.Counter(t.name("transport.error")).Add()
		return nil, err
	}
	metrics.Counter(t.name("respcode." + strconv.Itoa(resp.StatusCode))).Add()
	return resp, nil
}

func (t *Transport) name(s string) string {
	if t.Prefix == "" {
		return s
	}
	return t.Prefix + "." + s
}

// Count adds one to the named counter.
func Count(name string) {
	metrics.Counter(name).Add()
}

// Snapshot returns the current value of every counter.
func Snapshot() map[string]uint64 {
	counters, _ := metrics.Snapshot()
	return counters
}
