package wordpress

import (
	"encoding/json"
	"fmt"
)

// imageSizes is the allow-list of renditions the clients know how to use,
// in the order they are reported. Anything else upstream is dropped.
var imageSizes = []string{"thumbnail", "medium", "medium_large", "large", "full"}

type rawMedia struct {
	ID           int    `json:"id"`
	Code         string `json:"code"` // set on error placeholders, e.g. rest_forbidden
	AltText      string `json:"alt_text"`
	SourceURL    string `json:"source_url"`
	MediaDetails struct {
		Sizes map[string]rawMediaSize `json:"sizes"`
	} `json:"media_details"`
}

type rawMediaSize struct {
	Width     any    `json:"width"`
	Height    any    `json:"height"`
	SourceURL string `json:"source_url"`
}

// ReduceMedia converts one raw media object. A nil result with a nil error
// means "image unavailable": the payload was an access-denied placeholder or
// had no usable renditions. Callers treat that as a data-quality warning,
// never a failure.
func ReduceMedia(raw json.RawMessage) (*Media, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var m rawMedia
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode media: %w", err)
	}
	if m.Code != "" {
		// Upstream replaced the media with an error object (unpublished
		// attachment behind rest_forbidden).
		return nil, nil
	}
	if len(m.MediaDetails.Sizes) == 0 {
		return nil, nil
	}

	media := &Media{
		ID:     m.ID,
		Alt:    decode(m.AltText),
		Source: m.SourceURL,
	}
	for _, name := range imageSizes {
		info, ok := m.MediaDetails.Sizes[name]
		if !ok {
			continue
		}
		media.Sizes = append(media.Sizes, MediaSize{
			Name:   name,
			Width:  toInt(info.Width),
			Height: toInt(info.Height),
			URL:    info.SourceURL,
		})
	}
	if len(media.Sizes) == 0 {
		return nil, nil
	}
	return media, nil
}

// reduceEmbeddedMedia picks the first embedded wp:featuredmedia entry.
// Absence of the embed is the common "no image" case and yields nil.
func reduceEmbeddedMedia(embedded []json.RawMessage) (*Media, error) {
	if len(embedded) == 0 {
		return nil, nil
	}
	return ReduceMedia(embedded[0])
}
