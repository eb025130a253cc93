package wordpress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// rawSeo is embedded in fiches, posts, pages and the yoast home payload.
type rawSeo struct {
	YoastTitle  string          `json:"yoast_title"`
	YoastMeta   json.RawMessage `json:"yoast_meta"`
	YoastJSONLD json.RawMessage `json:"yoast_json_ld"`
}

// reduceSeo converts yoast metadata to opaque serialized strings. Entities
// without yoast fields (plugin disabled for the type) yield nil.
func (s rawSeo) reduce() *Seo {
	if s.YoastTitle == "" && len(s.YoastMeta) == 0 && len(s.YoastJSONLD) == 0 {
		return nil
	}
	return &Seo{
		Title:    decode(s.YoastTitle),
		Metadata: compactJSON(s.YoastMeta),
		JSONLD:   compactJSON(s.YoastJSONLD),
	}
}

// ReduceSeo converts a standalone SEO payload (the yoast /home endpoint).
func ReduceSeo(raw json.RawMessage) (*Seo, error) {
	var s rawSeo
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode seo: %w", err)
	}
	return s.reduce(), nil
}

func compactJSON(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// ReduceRedirect parses one space-delimited redirect line of the form
// "<from> <to> <status>". Trailing slashes are stripped from both paths.
func ReduceRedirect(line string) (*Redirect, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nil, &MalformedDataError{Resource: "redirect", Slug: line, Field: "from to status"}
	}
	status, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, &MalformedDataError{Resource: "redirect", Slug: line, Field: "status"}
	}
	return &Redirect{
		From:   strings.TrimSuffix(fields[0], "/"),
		To:     strings.TrimSuffix(fields[1], "/"),
		Status: status,
	}, nil
}

// ReduceTheme converts the chouquette theme payload.
func ReduceTheme(raw json.RawMessage) (*Theme, error) {
	var t struct {
		SystemText string `json:"system_text"`
	}
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode theme: %w", err)
	}
	return &Theme{SystemText: decode(t.SystemText)}, nil
}
