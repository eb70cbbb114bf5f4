package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type LetterServicer interface {
	Letter() template.HTML
}

type LetterServiceConfig struct {
	Markdown []byte
}

/*
LetterService renders the family letter from Markdown once at startup.
*/
type LetterService struct {
	html template.HTML
}

func NewLetterService(config LetterServiceConfig) (LetterService, error) {
	var (
		err error
		buf bytes.Buffer
	)

	md := goldmark.New(
		goldmark.WithExtensions(extension.Typographer),
	)

	if err = md.Convert(config.Markdown, &buf); err != nil {
		return LetterService{}, fmt.Errorf("error rendering letter: %w", err)
	}

	sanitized := bluemonday.UGCPolicy().SanitizeBytes(buf.Bytes())

	return LetterService{
		html: template.HTML(sanitized),
	}, nil
}

func (s LetterService) Letter() template.HTML {
	return s.html
}
