package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// FileSource reads a JSON object of key → tip from disk on every Load.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(_ context.Context) (TipTable, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read tips file: %w", err)
	}
	table, err := ParseTipTable(data)
	if err != nil {
		return nil, fmt.Errorf("parse tips file %s: %w", s.path, err)
	}
	return table, nil
}

// ParseTipTable decodes a JSON object of string values, keeping the keys in document order.
// A key repeated later in the document keeps its first position and takes the later value.
func ParseTipTable(data []byte) (TipTable, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("tips must be a JSON object")
	}

	var (
		table TipTable
		index = map[string]int{}
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		var text string
		if err := dec.Decode(&text); err != nil {
			return nil, fmt.Errorf("tip %q: %w", key, err)
		}
		if i, seen := index[key]; seen {
			table[i].Text = text
			continue
		}
		index[key] = len(table)
		table = append(table, Tip{Key: key, Text: text})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after tips object")
	}
	return table, nil
}
