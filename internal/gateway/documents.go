package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeDocument marshals a single row.
func EncodeDocument(row any) ([]byte, error) {
	doc, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("marshal row: %w", err)
	}
	if len(doc) == 0 || doc[0] != '{' {
		return nil, fmt.Errorf("row must encode to a json object, got %.20s", doc)
	}
	return doc, nil
}

// EncodeDocuments marshals a slice of rows into one document per element.
func EncodeDocuments(rows any) ([]json.RawMessage, error) {
	raw, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal rows: %w", err)
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("rows must encode to a json array: %w", err)
	}
	return docs, nil
}

// DecodeDocuments decodes stored documents into dst, a pointer to a slice.
func DecodeDocuments(docs [][]byte, dst any) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, d := range docs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(d)
	}
	buf.WriteByte(']')
	if err := json.Unmarshal(buf.Bytes(), dst); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}
	return nil
}

// KeyOf extracts the string value of keyColumn from a document.
func KeyOf(doc []byte, keyColumn string) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return "", fmt.Errorf("decode row: %w", err)
	}
	raw, ok := fields[keyColumn]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, keyColumn)
	}
	var key string
	if err := json.Unmarshal(raw, &key); err != nil || key == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, keyColumn)
	}
	return key, nil
}

// WithoutKey drops keyColumn from a document, so an update never rewrites the key.
func WithoutKey(doc []byte, keyColumn string) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	if _, ok := fields[keyColumn]; !ok {
		return doc, nil
	}
	delete(fields, keyColumn)
	return json.Marshal(fields)
}

// EncodeColumn marshals a whole profile column value.
func EncodeColumn(value any) ([]byte, error) {
	doc, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal column value: %w", err)
	}
	return doc, nil
}

func DecodeColumn(doc []byte, dst any) error {
	if err := json.Unmarshal(doc, dst); err != nil {
		return fmt.Errorf("decode column value: %w", err)
	}
	return nil
}
