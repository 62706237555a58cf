package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/complaint-desk/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// source is the indexed shape of a complaint.
type source struct {
	UserID      string `json:"user_id"`
	Category    string `json:"category"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Date        string `json:"date"`
}

type ComplaintIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewComplaintIndex(es *elasticsearch.Client, index string) *ComplaintIndex {
	return &ComplaintIndex{ES: es, Index: index}
}

// Put upserts the complaint document keyed by its id.
func (x *ComplaintIndex) Put(ctx context.Context, c *entity.Complaint) error {
	b, err := json.Marshal(source{
		UserID:      c.UserID,
		Category:    c.Category,
		Subject:     c.Subject,
		Description: c.Description,
		Status:      string(c.Status),
		Date:        c.Date.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: c.ID, Body: bytes.NewReader(b), Refresh: "false"}
	cctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(cctx, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over subject, description and category. Hits
// come back in relevance order.
func (x *ComplaintIndex) Search(ctx context.Context, q string, size int) ([]entity.Complaint, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"subject^2", "description", "category"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(cctx),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string `json:"_id"`
				Source source `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Complaint, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		date, _ := time.Parse(time.RFC3339Nano, h.Source.Date)
		out = append(out, entity.Complaint{
			ID:          h.ID,
			UserID:      h.Source.UserID,
			Category:    h.Source.Category,
			Subject:     h.Source.Subject,
			Description: h.Source.Description,
			Status:      entity.ComplaintStatus(h.Source.Status),
			Date:        date,
		})
	}
	return out, nil
}
