package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/homekeep-labs/homekeeper/internal/extract"
)

// recognitionSchema is the contract a remote OCR service must satisfy.
// Responses are validated before the pipeline sees them so that malformed
// payloads surface as acquisition failures, not as silent zero values.
var recognitionSchema = map[string]any{
	"type":     "object",
	"required": []any{"text", "confidence"},
	"properties": map[string]any{
		"text":       map[string]any{"type": "string"},
		"confidence": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
	},
}

// RemoteClient is the HTTP OCR collaborator: POST the image URI, get back
// {text, confidence}.
type RemoteClient struct {
	baseURL string
	client  *http.Client
	schema  *jsonschema.Schema
	logger  *slog.Logger
}

var _ extract.Recognizer = (*RemoteClient)(nil)

func NewRemoteClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*RemoteClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	schema, err := compileSchema(recognitionSchema)
	if err != nil {
		return nil, fmt.Errorf("compile recognition schema: %w", err)
	}
	return &RemoteClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		schema:  schema,
		logger:  logger,
	}, nil
}

func (c *RemoteClient) Recognize(ctx context.Context, imageURI string) (extract.Recognition, error) {
	body, err := json.Marshal(map[string]string{"image_uri": imageURI})
	if err != nil {
		return extract.Recognition{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/recognize", bytes.NewReader(body))
	if err != nil {
		return extract.Recognition{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return extract.Recognition{}, fmt.Errorf("ocr request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("close ocr response body", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return extract.Recognition{}, fmt.Errorf("ocr response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return extract.Recognition{}, fmt.Errorf("ocr service status %d: %s", resp.StatusCode, truncate(string(raw), 512))
	}

	if err := validateJSON(c.schema, raw); err != nil {
		return extract.Recognition{}, fmt.Errorf("ocr response does not match schema: %w", err)
	}

	var rec extract.Recognition
	if err := json.Unmarshal(raw, &rec); err != nil {
		return extract.Recognition{}, fmt.Errorf("decode ocr response: %w", err)
	}
	return rec, nil
}

// compileSchema compiles an inline schema map once, at construction.
func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("schema.json")
}

func validateJSON(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	return schema.Validate(v)
}
