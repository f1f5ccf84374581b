package apod

import (
	"fmt"
	"strings"
)

// MediaType classifies the resource a record points at.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Record mirrors the payload returned by the APOD endpoint for a single date.
type Record struct {
	Title          string    `json:"title"`
	Date           string    `json:"date"`
	Explanation    string    `json:"explanation"`
	MediaType      MediaType `json:"media_type"`
	URL            string    `json:"url"`
	HDURL          string    `json:"hdurl"`
	Copyright      string    `json:"copyright"`
	ServiceVersion string    `json:"service_version"`
}

// IsImage reports whether the record can be displayed.
func (r Record) IsImage() bool {
	return MediaType(strings.ToLower(strings.TrimSpace(string(r.MediaType)))) == MediaImage
}

// Narration is the text read aloud for the record.
func (r Record) Narration() string {
	return r.Title + ". " + r.Explanation
}

// Credit returns the copyright line, or empty when the image is public domain.
func (r Record) Credit() string {
	holder := strings.Join(strings.Fields(r.Copyright), " ")
	if holder == "" {
		return ""
	}
	return fmt.Sprintf("© %s", holder)
}

// errorResponse covers both error shapes the API gateway returns.
type errorResponse struct {
	Msg   string `json:"msg"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e errorResponse) message() string {
	if msg := strings.TrimSpace(e.Msg); msg != "" {
		return msg
	}
	return strings.TrimSpace(e.Error.Message)
}
