package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"path/filepath"
	"strings"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown format")

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromFilename picks the format from the file extension.
func FormatFromFilename(filename string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, filename)
	}
	return ParseFormat(ext)
}

func Decode(r io.Reader, format Format, v interface{}) error {
	switch format {
	case JSON:
		decoder := json.NewDecoder(r)
		if err := decoder.Decode(v); err != nil {
			return err
		}
		if _, err := decoder.Token(); err != io.EOF {
			return errors.New("unexpected data after json document")
		}
		return nil
	case YAML:
		err := yaml.NewDecoder(r).Decode(v)
		if err == io.EOF {
			// Empty document
			return nil
		}
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func Encode(w io.Writer, format Format, v interface{}) error {
	switch format {
	case JSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case YAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
