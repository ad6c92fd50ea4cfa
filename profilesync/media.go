package profilesync

import (
	"encoding/base64"
	"fmt"
	"log"
	"mime"
	"strings"
)

// MediaReference is the one state slot behind the avatar/logo control.
// The UI produces three shapes through it: a pre-existing remote URL, a
// data-URL preview, or a fresh binary upload. Exactly one variant is live
// at a time; the constructors enforce that by construction.
type MediaReference struct {
	url     string
	dataURL string
	file    *MediaFile
}

// MediaResolution is the outbound decision: at most one of File and URL is
// set, so a payload can never carry both a binary and a URL reference for
// the same logical field.
type MediaResolution struct {
	File *MediaFile
	URL  string
}

func NoMedia() MediaReference { return MediaReference{} }

func MediaFromURL(u string) MediaReference {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "data:") {
		return MediaReference{dataURL: u}
	}
	return MediaReference{url: u}
}

func MediaFromFile(name, contentType string, data []byte) MediaReference {
	return MediaReference{file: &MediaFile{Name: name, ContentType: contentType, Data: data}}
}

// IsEmpty reports whether no media value is held at all.
func (m MediaReference) IsEmpty() bool {
	return m.url == "" && m.dataURL == "" && m.file == nil
}

// Resolve applies the serialization decision table: binary wins, a
// data-URL is decoded to binary (fail-soft to "no media change"), an
// http(s) URL passes through as a reference, anything else is omitted.
func (m MediaReference) Resolve() MediaResolution {
	if m.file != nil {
		return MediaResolution{File: m.file}
	}
	if m.dataURL != "" {
		file, err := decodeDataURL(m.dataURL)
		if err != nil {
			log.Printf("Error decoding media data URL: %v", err)
			return MediaResolution{}
		}
		return MediaResolution{File: file}
	}
	if strings.HasPrefix(m.url, "http://") || strings.HasPrefix(m.url, "https://") {
		return MediaResolution{URL: m.url}
	}
	return MediaResolution{}
}

// decodeDataURL turns a "data:<mime>;base64,<payload>" string into a
// binary upload. No network is involved.
func decodeDataURL(u string) (*MediaFile, error) {
	rest, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL")
	}
	contentType, _, _ := strings.Cut(meta, ";")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if !strings.Contains(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data URL encoding")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding data URL payload: %v", err)
	}
	name := "upload"
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		name += exts[0]
	}
	return &MediaFile{Name: name, ContentType: contentType, Data: data}, nil
}
