package milvus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
)

// MilvusService talks to the Milvus v2 REST API. The vector database
// itself is an external collaborator; this client only shapes requests
// and decodes the {code, message, data} envelope Milvus responds with.
type MilvusService struct {
	app    *config.AppConfig
	client *http.Client
	logger *logrus.Entry
}

func New(app *config.AppConfig) *MilvusService {
	return &MilvusService{
		app: app,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: app.Logger.WithField("service", "milvus"),
	}
}

type milvusResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// CollectionInfo is the subset of describe output the API exposes.
type CollectionInfo struct {
	CollectionName string          `json:"collectionName"`
	Description    string          `json:"description,omitempty"`
	Load           string          `json:"load,omitempty"`
	ShardsNum      int             `json:"shardsNum,omitempty"`
	Fields         json.RawMessage `json:"fields,omitempty"`
}

func (s *MilvusService) post(ctx context.Context, endpoint string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := strings.TrimSuffix(s.app.Milvus.Host, "/") + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.app.Milvus.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.app.Milvus.Token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	res := new(milvusResponse)
	if err = json.Unmarshal(raw, res); err != nil {
		return nil, fmt.Errorf("invalid milvus response: %w", err)
	}
	if res.Code != 0 {
		return nil, fmt.Errorf("milvus error %d: %s", res.Code, res.Message)
	}

	return res.Data, nil
}

func (s *MilvusService) ListCollections(ctx context.Context) ([]string, error) {
	data, err := s.post(ctx, "/v2/vectordb/collections/list", map[string]interface{}{
		"dbName": s.app.Milvus.Database,
	})
	if err != nil {
		return nil, err
	}

	var names []string
	if err = json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (s *MilvusService) DescribeCollection(ctx context.Context, collection string) (*CollectionInfo, error) {
	data, err := s.post(ctx, "/v2/vectordb/collections/describe", map[string]interface{}{
		"dbName":         s.app.Milvus.Database,
		"collectionName": collection,
	})
	if err != nil {
		return nil, err
	}

	info := new(CollectionInfo)
	if err = json.Unmarshal(data, info); err != nil {
		return nil, err
	}
	return info, nil
}

// QueryAll pages through a collection's entities with limit/offset.
func (s *MilvusService) QueryAll(ctx context.Context, collection string, outputFields []string, limit, offset int) ([]map[string]interface{}, error) {
	data, err := s.post(ctx, "/v2/vectordb/entities/query", map[string]interface{}{
		"dbName":         s.app.Milvus.Database,
		"collectionName": collection,
		"filter":         "id > 0",
		"outputFields":   outputFields,
		"limit":          limit,
		"offset":         offset,
	})
	if err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	if err = json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *MilvusService) QueryByID(ctx context.Context, collection string, id int64, outputFields []string) ([]map[string]interface{}, error) {
	data, err := s.post(ctx, "/v2/vectordb/entities/get", map[string]interface{}{
		"dbName":         s.app.Milvus.Database,
		"collectionName": collection,
		"id":             []int64{id},
		"outputFields":   outputFields,
	})
	if err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	if err = json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *MilvusService) Insert(ctx context.Context, collection string, entities []map[string]interface{}) (json.RawMessage, error) {
	return s.post(ctx, "/v2/vectordb/entities/insert", map[string]interface{}{
		"dbName":         s.app.Milvus.Database,
		"collectionName": collection,
		"data":           entities,
	})
}

func (s *MilvusService) DeleteByID(ctx context.Context, collection string, id int64) error {
	_, err := s.post(ctx, "/v2/vectordb/entities/delete", map[string]interface{}{
		"dbName":         s.app.Milvus.Database,
		"collectionName": collection,
		"filter":         fmt.Sprintf("id == %d", id),
	})
	return err
}
