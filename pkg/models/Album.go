package models

import (
	"fmt"
	"strings"
)

var (
	ErrAlbumNotFound = fmt.Errorf("album not found")
)

type AlbumState int

const (
	AlbumUninitialized AlbumState = iota
	AlbumLoading
	AlbumResolved
)

func (s AlbumState) String() string {
	switch s {
	case AlbumLoading:
		return "loading"

	case AlbumResolved:
		return "resolved"

	default:
		return "uninitialized"
	}
}

/*
AlbumDefinition is the static configuration of one album. It is loaded once
at startup and never mutated.
*/
type AlbumDefinition struct {
	ID             string   `yaml:"id" json:"id"`
	Title          string   `yaml:"title" json:"title"`
	Subtitle       string   `yaml:"subtitle" json:"subtitle"`
	Description    string   `yaml:"description" json:"description"`
	Tag            string   `yaml:"tag" json:"tag"`
	FeatureImage   string   `yaml:"featureImage" json:"featureImage"`
	FallbackImages []string `yaml:"fallbackImages" json:"fallbackImages"`
	Layout         string   `yaml:"layout" json:"layout"`
}

func (a AlbumDefinition) IsLarge() bool {
	return strings.Contains(a.Layout, "col-span-2")
}

type ResolvedAlbum struct {
	AlbumDefinition

	Images    []string   `json:"images"`
	IsLoading bool       `json:"isLoading"`
	State     AlbumState `json:"-"`
}

func (a ResolvedAlbum) HasImages() bool {
	return len(a.Images) > 0
}
