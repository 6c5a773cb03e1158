// Package fixture replays recorded HTTP interactions in place of a live provider.
//
// Definition files are arrays of recorded calls in the nock format:
//
//	[{"scope": "https://api.mailgun.net:443", "method": "GET",
//	  "path": "/v3/lists/pages?limit=100", "status": 200, "response": {...}}]
//
// Each definition answers exactly one matching request.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Definition struct {
	Scope      string   `yaml:"scope"`
	Method     string   `yaml:"method"`
	Path       string   `yaml:"path"`
	Status     int      `yaml:"status"`
	Response   any      `yaml:"response"`
	RawHeaders []string `yaml:"rawHeaders"`
}

// Load reads the definitions of one file. JSON recordings decode as YAML.
func Load(path string) ([]Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read fixture %s", path)
	}

	var defs []Definition
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return nil, errors.Wrapf(err, "decode fixture %s", path)
	}

	for i, def := range defs {
		if def.Method == "" || def.Path == "" {
			return nil, errors.Errorf("fixture %s: definition %d needs a method and a path", path, i)
		}
	}

	return defs, nil
}

// LoadAction reads <dir>/<action>.json.
func LoadAction(dir, action string) ([]Definition, error) {
	return Load(filepath.Join(dir, action+".json"))
}

// Transport is an http.RoundTripper answering from definitions.
type Transport struct {
	mu       sync.Mutex
	defs     []Definition
	consumed []bool
}

func NewTransport(defs []Definition) *Transport {
	return &Transport{
		defs:     defs,
		consumed: make([]bool, len(defs)),
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		_ = req.Body.Close()
	}

	def, ok := t.take(req)
	if !ok {
		return nil, errors.Errorf("fixture: no recorded response for %s %s", req.Method, req.URL.Redacted())
	}

	body, err := def.body()
	if err != nil {
		return nil, errors.Wrapf(err, "fixture: encode response for %s %s", def.Method, def.Path)
	}

	status := def.Status
	if status == 0 {
		status = http.StatusOK
	}

	header := make(http.Header)
	for i := 0; i+1 < len(def.RawHeaders); i += 2 {
		header.Add(def.RawHeaders[i], def.RawHeaders[i+1])
	}
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}

// Pending lists definitions no request has consumed yet.
func (t *Transport) Pending() []Definition {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []Definition
	for i, def := range t.defs {
		if !t.consumed[i] {
			out = append(out, def)
		}
	}
	return out
}

func (t *Transport) take(req *http.Request) (Definition, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, def := range t.defs {
		if t.consumed[i] || !def.matches(req) {
			continue
		}
		t.consumed[i] = true
		return def, true
	}
	return Definition{}, false
}

func (d Definition) matches(req *http.Request) bool {
	if !strings.EqualFold(d.Method, req.Method) {
		return false
	}
	if d.Scope != "" && normalizeScope(d.Scope) != normalizeScope(req.URL.Scheme+"://"+req.URL.Host) {
		return false
	}

	recorded, err := url.Parse(d.Path)
	if err != nil {
		return false
	}
	if recorded.Path != req.URL.Path {
		return false
	}
	return recorded.Query().Encode() == req.URL.Query().Encode()
}

func (d Definition) body() ([]byte, error) {
	switch v := d.Response.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(v), nil
	default:
		return json.Marshal(v)
	}
}

// normalizeScope drops default ports so "https://host:443" equals "https://host".
func normalizeScope(scope string) string {
	u, err := url.Parse(scope)
	if err != nil {
		return scope
	}

	host := u.Hostname()
	if port := u.Port(); port != "" && !(u.Scheme == "https" && port == "443") && !(u.Scheme == "http" && port == "80") {
		host += ":" + port
	}
	return strings.ToLower(u.Scheme + "://" + host)
}
