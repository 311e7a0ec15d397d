package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const keyRoot = "trips/users"

// PathstoreStore keeps records in a pathstore KV service under
// trips/users/{user}/itineraries/{id}.
type PathstoreStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewPathstoreStore(baseURL, apiKey string) *PathstoreStore {
	return &PathstoreStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type nodeRequest struct {
	Value      any    `json:"value"`
	MemoryType string `json:"memory_type,omitempty"`
	Source     string `json:"source,omitempty"`
}

type nodeResponse struct {
	Key   string          `json:"key_path"`
	Value json.RawMessage `json:"value"`
}

func itinerariesKey(userID string) string {
	return keyRoot + "/" + url.PathEscape(userID) + "/itineraries"
}

func recordKey(userID, id string) string {
	return itinerariesKey(userID) + "/" + url.PathEscape(id)
}

func (s *PathstoreStore) Save(ctx context.Context, rec *Record) error {
	if err := validateRecord(rec); err != nil {
		return err
	}
	body, err := json.Marshal(nodeRequest{
		Value:      rec,
		MemoryType: "itinerary",
		Source:     "tripgest",
	})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	key := recordKey(rec.UserID, rec.ID)
	resp, err := s.do(ctx, http.MethodPut, "/kv/"+key, body)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError("put record "+key, resp)
	}
	return nil
}

func (s *PathstoreStore) Get(ctx context.Context, userID, id string) (*Record, error) {
	if ValidateID(userID) != nil || ValidateID(id) != nil {
		return nil, ErrNotFound
	}
	key := recordKey(userID, id)
	resp, err := s.do(ctx, http.MethodGet, "/kv/"+key, nil)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("get record "+key, resp)
	}

	var node nodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&node); err != nil {
		return nil, fmt.Errorf("decode node: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(node.Value, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", key, err)
	}
	return &rec, nil
}

// List does a prefix scan of the user's itineraries. Nodes whose value is
// not a record are skipped.
func (s *PathstoreStore) List(ctx context.Context, userID string) ([]Record, error) {
	if ValidateID(userID) != nil {
		return []Record{}, nil
	}
	prefix := itinerariesKey(userID)
	resp, err := s.do(ctx, http.MethodGet, "/kv/"+prefix+"/*", nil)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return []Record{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list records "+prefix, resp)
	}

	var result struct {
		Nodes []nodeResponse `json:"nodes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode children: %w", err)
	}
	out := make([]Record, 0, len(result.Nodes))
	for _, n := range result.Nodes {
		var rec Record
		if err := json.Unmarshal(n.Value, &rec); err != nil || rec.ID == "" {
			continue
		}
		out = append(out, rec)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *PathstoreStore) Delete(ctx context.Context, userID, id string) error {
	if ValidateID(userID) != nil || ValidateID(id) != nil {
		return ErrNotFound
	}
	key := recordKey(userID, id)
	resp, err := s.do(ctx, http.MethodDelete, "/kv/"+key, nil)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	}
	return statusError("delete record "+key, resp)
}

func (s *PathstoreStore) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	return s.httpClient.Do(req)
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, string(body))
}

// Close releases idle connections.
func (s *PathstoreStore) Close() {
	s.httpClient.CloseIdleConnections()
}
