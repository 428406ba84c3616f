package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

// readComparisonFile decodes a comparison from JSON or YAML, chosen by extension.
func readComparisonFile(path string) (*models.ComparisonData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read comparison file: %w", err)
	}
	return decodeComparison(raw, filepath.Ext(path))
}

func decodeComparison(raw []byte, ext string) (*models.ComparisonData, error) {
	var data models.ComparisonData
	switch strings.ToLower(ext) {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&data); err != nil {
			return nil, fmt.Errorf("failed to parse comparison JSON: %w", err)
		}
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(raw))
		decoder.KnownFields(true)
		if err := decoder.Decode(&data); err != nil {
			return nil, fmt.Errorf("failed to parse comparison YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported comparison file extension %q", ext)
	}
	return &data, nil
}
