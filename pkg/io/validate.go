package io

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/matzehuels/tabmind/pkg/errors"
)

// Validate checks the structure of a persisted document without building a
// graph. It fails with [errors.ErrCodeInvalidDocument] when:
//   - the data is not JSON, or the top-level value is not an object
//   - "urls", "topics" or "edges" is missing or not an array
//   - a url or topic entry is not an object
//   - a url entry lacks "id" or "url", or a topic entry lacks "id" or "topic"
//   - one of those fields, or an optional "description", is not a string
//
// Edge entries are deliberately not inspected: [Decode] skips malformed edges
// one by one instead of rejecting the document.
func Validate(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "document is not valid JSON")
	}
	top, ok := raw.(map[string]any)
	if !ok {
		return errors.New(errors.ErrCodeInvalidDocument, "outermost JSON value is not an object")
	}

	if err := validateEntries(top, keyURLs, keyURL); err != nil {
		return err
	}
	if err := validateEntries(top, keyTopics, keyTopic); err != nil {
		return err
	}
	if _, err := list(top, keyEdges); err != nil {
		return err
	}
	return nil
}

// ValidateFile reads path and runs [Validate] on its contents.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "read %s", path)
	}
	return Validate(data)
}

func list(top map[string]any, key string) ([]any, error) {
	v, ok := top[key]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s not found in document", key)
	}
	items, ok := v.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s is not a list", key)
	}
	return items, nil
}

func validateEntries(top map[string]any, key, nameKey string) error {
	items, err := list(top, key)
	if err != nil {
		return err
	}
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return errors.New(errors.ErrCodeInvalidDocument, "%s[%d] is not a JSON object", key, i)
		}
		for _, field := range []string{keyID, nameKey} {
			v, ok := entry[field]
			if !ok {
				return errors.New(errors.ErrCodeInvalidDocument, "%s[%d] has no %q", key, i, field)
			}
			if _, ok := v.(string); !ok {
				return errors.New(errors.ErrCodeInvalidDocument, "%s[%d].%s is not a string", key, i, field)
			}
		}
		if v, ok := entry[keyDescription]; ok && v != nil {
			if _, ok := v.(string); !ok {
				return errors.New(errors.ErrCodeInvalidDocument, "%s[%d].%s is not a string", key, i, keyDescription)
			}
		}
	}
	return nil
}
