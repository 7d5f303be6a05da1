package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Reader decodes JSON documents such as compiled contract classes.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadJSON decodes the single JSON document stored at path into target.
// Anything after the first document is rejected.
func (r *Reader) ReadJSON(path string, target any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to unmarshal JSON: unexpected data after document in %s", path)
	}

	return nil
}
