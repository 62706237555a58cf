package elastic

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/oksasatya/complaint-desk/config"
)

// NewClient builds the Elasticsearch client from ELASTICSEARCH_* settings.
func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	addrs := cfg.ESAddrs()
	if len(addrs) == 0 {
		return nil, errors.New("elasticsearch: no addresses configured")
	}
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addrs,
		Username:  cfg.ElasticsearchUser,
		Password:  cfg.ElasticsearchPass,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	})
}

// complaintMapping keeps category and status filterable while still letting
// multi_match score category as text.
var complaintMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"user_id":     map[string]any{"type": "keyword"},
			"category":    map[string]any{"type": "text", "fields": map[string]any{"raw": map[string]any{"type": "keyword"}}},
			"subject":     map[string]any{"type": "text"},
			"description": map[string]any{"type": "text"},
			"status":      map[string]any{"type": "keyword"},
			"date":        map[string]any{"type": "date"},
		},
	},
}

// EnsureIndex creates the complaints index with its mapping unless it
// already exists.
func (x *ComplaintIndex) EnsureIndex(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Indices.Exists([]string{x.Index}, x.ES.Indices.Exists.WithContext(cctx))
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("es index exists: %s", res.Status())
	}

	b, err := json.Marshal(complaintMapping)
	if err != nil {
		return err
	}
	res, err = x.ES.Indices.Create(x.Index,
		x.ES.Indices.Create.WithContext(cctx),
		x.ES.Indices.Create.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if !res.IsError() {
		return nil
	}
	// Another instance may have created it in between.
	var body struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	if json.NewDecoder(res.Body).Decode(&body) == nil && body.Error.Type == "resource_already_exists_exception" {
		return nil
	}
	return fmt.Errorf("es create index: %s", res.Status())
}
