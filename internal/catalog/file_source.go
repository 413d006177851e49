package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileDocument struct {
	Books []Record `yaml:"books"`
}

// FileSource reads records from a YAML document of the form:
//
//	books:
//	  - title: Clean Code
//	    author: Robert C. Martin
//	    published_on: 2008-08-01
//	    started_on: 2016-09-01
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Fetch(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a books document.
func ParseYAML(data []byte) ([]Record, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode books yaml: %w", err)
	}
	return doc.Books, nil
}
