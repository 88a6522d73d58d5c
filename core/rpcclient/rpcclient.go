// Package rpcclient talks to a node's REST interface. It covers the
// two calls the command-line tools need: submitting a serialized
// transaction and reading an account's native balances.
package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/user00000001/tesrasdk-go/core/config"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/metrics"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/tx"
)

const (
	pathTransaction = "/api/v1/transaction"
	pathBalance     = "/api/v1/balance/"

	restVersion = "1.0.0"
)

// ErrNode is the root of errors reported by a node in the Error
// field of its response. The node's code is available from
// errors.Code.
var ErrNode = errors.New("node error")

// Client is a REST client for one node.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for cfg.RESTURL. Requests are counted under
// the "rpcclient" metrics prefix and bounded by cfg.Timeout.
func New(cfg config.Config) *Client {
	return &Client{
		BaseURL: cfg.RESTURL,
		HTTP: &http.Client{
			Transport: &metrics.Transport{Prefix: "rpcclient"},
			Timeout:   cfg.Timeout,
		},
	}
}

// response is the envelope around every REST result.
type response struct {
	Action  string
	Desc    string
	Error   int
	Result  json.RawMessage
	Version string
}

// errStatusCode is returned when a request fails with a non-2xx code.
type errStatusCode struct {
	URL        string
	StatusCode int
}

func (e errStatusCode) Error() string {
	return fmt.Sprintf("request to `%s` responded with %d %s",
		e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// SendRawTransaction submits t. With preExec the node executes the
// transaction without committing it and the raw result is returned.
func (c *Client) SendRawTransaction(ctx context.Context, t *tx.Transaction, preExec bool) (json.RawMessage, error) {
	data, err := t.Serialize()
	if err != nil {
		return nil, errors.Wrap(err, "serializing transaction")
	}
	path := pathTransaction
	if preExec {
		path += "?preExec=1"
	}
	req := struct {
		Action  string
		Version string
		Data    string
	}{"sendrawtransaction", restVersion, data}
	return c.call(ctx, "POST", path, req)
}

// Submit sends t for inclusion in a block.
func (c *Client) Submit(ctx context.Context, t *tx.Transaction) error {
	res, err := c.SendRawTransaction(ctx, t, false)
	if err != nil {
		return err
	}
	log.Debugf("submitted %s", res)
	return nil
}

// Balance holds native token balances as decimal strings in the
// smallest unit.
type Balance struct {
	TST string `json:"tst"`
	TSG string `json:"tsg"`
}

// GetBalance returns the native balances of addr.
func (c *Client) GetBalance(ctx context.Context, addr bc.Address) (*Balance, error) {
	res, err := c.call(ctx, "GET", pathBalance+addr.Base58(), nil)
	if err != nil {
		return nil, err
	}
	b := new(Balance)
	err = json.Unmarshal(res, b)
	if err != nil {
		return nil, errors.Wrap(err, "decoding balance")
	}
	return b, nil
}

func (c *Client) call(ctx context.Context, method, path string, request interface{}) (json.RawMessage, error) {
	u, err := url.Parse(strings.TrimRight(c.BaseURL, "/") + path)
	if err != nil {
		return nil, errors.Wrap(err, "parsing node URL")
	}

	var body io.Reader
	if request != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(request); err != nil {
			return nil, errors.Wrap(err, "encoding request")
		}
		body = &buf
	}

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	log.Tracef("%s %s", method, u)
	resp, err := httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errStatusCode{URL: u.String(), StatusCode: resp.StatusCode}
	}

	var r response
	err = json.NewDecoder(resp.Body).Decode(&r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding response")
	}
	if r.Error != errors.CodeSuccess {
		err = errors.WithDetail(ErrNode, r.Desc)
		err = errors.WithData(err, "code", r.Error, "action", r.Action)
		metrics.Count("rpcclient.node.error")
		log.Debugf("%s: node error %d %s", r.Action, r.Error, r.Desc)
		return nil, err
	}
	return r.Result, nil
}
