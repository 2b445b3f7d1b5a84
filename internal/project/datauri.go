package project

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"sceneeditor/internal/scene"
)

var ErrBadDataURI = errors.New("project: malformed data URI")

const defaultMimeType = "application/octet-stream"

// encodeDataURI renders data as "data:<mime>;base64,<payload>".
func encodeDataURI(mime string, data []byte) string {
	if mime == "" {
		mime = defaultMimeType
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func decodeDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%.20q: %w", uri, ErrBadDataURI)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%.20q: missing payload: %w", uri, ErrBadDataURI)
	}
	mime, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%.20q: only base64 payloads are supported: %w", uri, ErrBadDataURI)
	}
	if mime == "" {
		mime = defaultMimeType
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return mime, data, nil
}

func encodeTexture(t *scene.Texture) *TextureDef {
	if t == nil {
		return nil
	}
	return &TextureDef{
		Name:    t.Name,
		Data:    encodeDataURI(t.MimeType, t.Data),
		UOffset: t.UOffset,
		VOffset: t.VOffset,
	}
}

func decodeTexture(def *TextureDef) (*scene.Texture, error) {
	if def == nil {
		return nil, nil
	}
	mime, data, err := decodeDataURI(def.Data)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", def.Name, err)
	}
	return &scene.Texture{
		Name:     def.Name,
		MimeType: mime,
		Data:     data,
		UOffset:  def.UOffset,
		VOffset:  def.VOffset,
	}, nil
}
