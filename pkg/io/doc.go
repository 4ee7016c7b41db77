// Package io reads and writes the JSON document that persists a tabmind graph.
//
// # JSON Format
//
// The document has three required top-level arrays:
//
//	{
//	  "urls": [
//	    {"id": "0b7e...", "url": "http://a.com", "description": "daily"}
//	  ],
//	  "topics": [
//	    {"id": "5f21...", "topic": "news"}
//	  ],
//	  "edges": [
//	    ["0b7e...", "5f21..."]
//	  ]
//	}
//
// Node IDs are UUID strings. "description" is optional and defaults to "".
// Edges are unordered pairs; the writer puts the smaller ID first.
//
// # Validation
//
// [Validate] checks the shape of a document before anything is loaded and
// fails with an INVALID_DOCUMENT error from pkg/errors. tabmind treats that as
// fatal at startup. Edge entries are exempt from validation: [Decode] skips a
// malformed or dangling edge, reports it in [Result.Skipped], and loads the
// rest of the graph.
//
// # Import
//
// Use [Decode] for bytes, [ReadJSON] for any io.Reader or [ImportJSON] for a
// file path. All three validate first.
//
// # Export
//
// Use [Encode], [WriteJSON] or [ExportJSON]. Output is deterministic: nodes
// sorted by name, edges in canonical order. [WriteYAML] renders the same
// document as YAML for reading.
//
// Writes replace the whole document and are not atomic; a crash mid-write can
// leave a truncated file behind.
package io
