package showcase

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/adampresley/yearinreview/pkg/models"
	"gopkg.in/yaml.v3"
)

type Hero struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Intro    string `yaml:"intro"`
	Button   string `yaml:"button"`
}

type Closing struct {
	Title    string `yaml:"title"`
	Message  string `yaml:"message"`
	Greeting string `yaml:"greeting"`
}

type InstagramLink struct {
	Name   string `yaml:"name"`
	Handle string `yaml:"handle"`
}

func (l InstagramLink) URL() string {
	return "https://instagram.com/" + l.Handle
}

type SiteLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

func (l SiteLink) Href() string {
	if strings.HasPrefix(l.URL, "http://") || strings.HasPrefix(l.URL, "https://") {
		return l.URL
	}

	return "http://" + l.URL
}

/*
Showcase is the static content of the page, including the ordered album
definitions.
*/
type Showcase struct {
	Hero      Hero                     `yaml:"hero"`
	Closing   Closing                  `yaml:"closing"`
	Instagram []InstagramLink          `yaml:"instagram"`
	Sites     []SiteLink               `yaml:"sites"`
	Footer    string                   `yaml:"footer"`
	Albums    []models.AlbumDefinition `yaml:"albums"`
}

func Load(fsys fs.FS, name string) (Showcase, error) {
	var (
		err    error
		b      []byte
		result Showcase
	)

	if b, err = fs.ReadFile(fsys, name); err != nil {
		return result, fmt.Errorf("error reading showcase file '%s': %w", name, err)
	}

	if err = yaml.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("error parsing showcase file '%s': %w", name, err)
	}

	if err = result.Validate(); err != nil {
		return result, err
	}

	return result, nil
}

/*
Validate checks that every album has an id and a tag, and that ids are
unique.
*/
func (s Showcase) Validate() error {
	seen := map[string]bool{}

	for index, album := range s.Albums {
		if album.ID == "" {
			return fmt.Errorf("album at position %d has no id", index)
		}

		if album.Tag == "" {
			return fmt.Errorf("album '%s' has no tag", album.ID)
		}

		if seen[album.ID] {
			return fmt.Errorf("album id '%s' is used more than once", album.ID)
		}

		seen[album.ID] = true
	}

	return nil
}
