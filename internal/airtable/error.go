// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package airtable

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	at "github.com/mehanizm/airtable"
)

// Error is a non-2xx response from the API. Message is the upstream text
// and is meant to be shown to API callers as is.
type Error struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// translate turns an HTTP failure reported by the library into *Error. The
// library folds the response body into its error text, so the body is
// recovered from there. Transport errors are wrapped as they are.
func translate(err error) error {
	var httpErr *at.HTTPClientError
	if !errors.As(err, &httpErr) {
		return fmt.Errorf("airtable: %w", err)
	}
	return parseError(httpErr.StatusCode, responseBody(httpErr.Error()))
}

// responseBody extracts the response body from the library's error text:
// the first JSON object in it when there is one, otherwise the last line.
func responseBody(text string) []byte {
	if i := strings.Index(text, "{"); i >= 0 {
		var raw json.RawMessage
		if json.NewDecoder(strings.NewReader(text[i:])).Decode(&raw) == nil {
			return raw
		}
	}
	if i := strings.LastIndex(text, "\n"); i >= 0 {
		text = text[i+1:]
	}
	return []byte(strings.TrimSpace(text))
}

// parseError decodes either error shape the API uses:
// {"error": {"type": "...", "message": "..."}} or {"error": "NOT_FOUND"}.
func parseError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 {
		var detailed struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}
		var code string
		switch {
		case json.Unmarshal(envelope.Error, &detailed) == nil:
			e.Type = detailed.Type
			e.Message = detailed.Message
		case json.Unmarshal(envelope.Error, &code) == nil:
			e.Type = code
		}
	}

	if e.Message == "" {
		e.Message = defaultMessage(status, e.Type, body)
	}
	return e
}

// defaultMessage builds a readable message when the body carries none.
func defaultMessage(status int, errType string, body []byte) string {
	switch status {
	case http.StatusUnauthorized:
		return "You should provide valid api key to perform this operation"
	case http.StatusForbidden:
		return "You are not allowed to perform this operation"
	case http.StatusNotFound:
		return "Could not find what you are looking for"
	case http.StatusRequestEntityTooLarge:
		return "Request body is too large"
	case http.StatusUnprocessableEntity:
		return "The operation cannot be processed"
	case http.StatusTooManyRequests:
		return "You have made too many requests in a short period of time. Please retry your request later"
	}
	if errType != "" {
		return errType
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return fmt.Sprintf("airtable API error (status %d): %s", status, text)
	}
	return fmt.Sprintf("airtable API error (status %d)", status)
}
