// Package schemas embeds the JSON Schemas shared between the API and its clients.
package schemas

import (
	"bytes"
	_ "embed"
)

//go:embed submission.schema.json
var submission []byte

//go:embed feedback.schema.json
var feedback []byte

// Submission returns the schema every assessment submission must satisfy.
func Submission() []byte {
	return bytes.Clone(submission)
}

// Feedback returns the schema describing a well-formed model critique.
func Feedback() []byte {
	return bytes.Clone(feedback)
}
