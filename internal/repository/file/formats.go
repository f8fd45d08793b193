package file

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"note-manager/internal/converter"
)

// YAML хранит записи одной YAML-последовательностью.
// Дописанная в конец файла последовательность из одного элемента продолжает исходную.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Marshal(records []converter.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("yaml.Encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml.Close: %w", err)
	}
	return buf.Bytes(), nil
}

func (YAML) Unmarshal(data []byte) ([]converter.Record, error) {
	var records []converter.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}
	return records, nil
}

// JSONLines хранит по одной JSON-записи на строку
type JSONLines struct{}

func (JSONLines) Name() string { return "jsonl" }

func (JSONLines) Marshal(records []converter.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("json.Encode: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func (JSONLines) Unmarshal(data []byte) ([]converter.Record, error) {
	var records []converter.Record

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec converter.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: json.Unmarshal: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return records, nil
}
