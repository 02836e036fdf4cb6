package db

import (
	"fmt"
	"os"

	"stackit/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultTags are created on first start.
func DefaultTags() []models.Tag {
	return []models.Tag{
		{Name: "Python", Color: "#3776ab"},
		{Name: "JavaScript", Color: "#f7df1e"},
		{Name: "Flask", Color: "#000000"},
		{Name: "React", Color: "#61dafb"},
		{Name: "Database", Color: "#336791"},
		{Name: "API", Color: "#ff6b35"},
		{Name: "Frontend", Color: "#e34c26"},
		{Name: "Backend", Color: "#68217a"},
	}
}

type tagSeed struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// LoadTagSeed reads a YAML list of {name, color}. An empty path yields the defaults.
func LoadTagSeed(path string) ([]models.Tag, error) {
	if path == "" {
		return DefaultTags(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tag seed: %w", err)
	}

	var seeds []tagSeed
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse tag seed %s: %w", path, err)
	}

	tags := make([]models.Tag, 0, len(seeds))
	for i, s := range seeds {
		if s.Name == "" {
			return nil, fmt.Errorf("tag seed %s: entry %d has no name", path, i)
		}
		tags = append(tags, models.Tag{Name: s.Name, Color: s.Color})
	}
	return tags, nil
}
