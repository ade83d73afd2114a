// Package e2e runs the Gherkin features against a live workout API.
package e2e

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:8000"

// TestContext holds the HTTP client and the last response of a scenario.
type TestContext struct {
	baseURL    string
	client     *http.Client
	run        string
	values     map[string]string
	lastStatus int
	lastBody   []byte
	lastHeader http.Header
}

func NewTestContext() *TestContext {
	baseURL := os.Getenv("WORKOUT_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &TestContext{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset starts a fresh scenario. Every scenario gets its own run token so
// unique names and CPFs never collide with earlier runs against the same database.
func (tc *TestContext) Reset() {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	tc.run = hex.EncodeToString(buf)
	tc.values = map[string]string{}
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.lastHeader = nil
}

// Set binds a placeholder used by Expand, e.g. Set("cpf", "12345678909") for "{cpf}".
func (tc *TestContext) Set(name, value string) {
	tc.values[name] = value
}

// Expand replaces "{run}" and any bound "{name}" placeholders.
func (tc *TestContext) Expand(s string) string {
	s = strings.ReplaceAll(s, "{run}", tc.run)
	for name, value := range tc.values {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}

func (tc *TestContext) Request(ctx context.Context, method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+tc.Expand(path), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.lastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	tc.lastStatus = resp.StatusCode
	tc.lastHeader = resp.Header
	return nil
}

// RequestRaw sends a JSON document given as text, after placeholder expansion.
func (tc *TestContext) RequestRaw(ctx context.Context, method, path, doc string) error {
	var body any
	if err := json.Unmarshal([]byte(tc.Expand(doc)), &body); err != nil {
		return fmt.Errorf("step body is not JSON: %w", err)
	}
	return tc.Request(ctx, method, path, body)
}

func (tc *TestContext) LastStatus() int  { return tc.lastStatus }
func (tc *TestContext) LastBody() []byte { return tc.lastBody }

func (tc *TestContext) LastHeader(k string) string {
	if tc.lastHeader == nil {
		return ""
	}
	return tc.lastHeader.Get(k)
}

// ResponseField walks a dotted path such as "categoria.nome" or "items.0.nome".
func (tc *TestContext) ResponseField(path string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.lastBody, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w (body %q)", err, tc.lastBody)
	}
	cur := doc
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q missing in %s", part, tc.lastBody)
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %s", part, tc.lastBody)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("cannot descend into %q in %s", part, tc.lastBody)
		}
	}
	return cur, nil
}
