package io

import "encoding/json"

// Top-level and entry keys of the persisted document.
const (
	keyURLs        = "urls"
	keyTopics      = "topics"
	keyEdges       = "edges"
	keyID          = "id"
	keyURL         = "url"
	keyTopic       = "topic"
	keyDescription = "description"
)

// document is the on-disk shape. Edges are kept raw so that one malformed
// entry can be skipped without failing the decode of the rest.
type document struct {
	URLs   []urlEntry        `json:"urls" yaml:"urls"`
	Topics []topicEntry      `json:"topics" yaml:"topics"`
	Edges  []json.RawMessage `json:"edges" yaml:"-"`
}

type urlEntry struct {
	ID          string `json:"id" yaml:"id"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type topicEntry struct {
	ID          string `json:"id" yaml:"id"`
	Topic       string `json:"topic" yaml:"topic"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// outDocument is the write-side shape with typed edge pairs.
type outDocument struct {
	URLs   []urlEntry   `json:"urls" yaml:"urls"`
	Topics []topicEntry `json:"topics" yaml:"topics"`
	Edges  [][2]string  `json:"edges" yaml:"edges,flow"`
}
