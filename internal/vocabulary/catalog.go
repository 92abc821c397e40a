// Package vocabulary provides the word categories learners browse.
package vocabulary

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/categories.yml
var defaultCatalog []byte

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrWordNotFound     = errors.New("word not found")
)

type Category struct {
	Name        string `yaml:"name" json:"name"`
	NameSpanish string `yaml:"name_spanish" json:"name_spanish"`
	Image       string `yaml:"image,omitempty" json:"image,omitempty"`
	Words       []Word `yaml:"words" json:"words"`
}

type Word struct {
	English string `yaml:"english" json:"english"`
	Spanish string `yaml:"spanish" json:"spanish"`
	Image   string `yaml:"image,omitempty" json:"image,omitempty"`
	Audio   string `yaml:"audio,omitempty" json:"audio,omitempty"`
}

// Catalog is an ordered, read-only list of categories.
type Catalog struct {
	categories []Category
}

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file, falling back to the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	catalog, err := Parse(contents)
	if err != nil {
		return nil, fmt.Errorf("parse %s > %w", path, err)
	}
	return catalog, nil
}

func Parse(contents []byte) (*Catalog, error) {
	var categories []Category
	decoder := yaml.NewDecoder(bytes.NewReader(contents))
	decoder.KnownFields(true)
	if err := decoder.Decode(&categories); err != nil {
		return nil, fmt.Errorf("yaml.Decode > %w", err)
	}

	seen := make(map[string]bool, len(categories))
	for i, category := range categories {
		key := normalize(category.Name)
		if key == "" {
			return nil, fmt.Errorf("category #%d has no name", i+1)
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate category %q", category.Name)
		}
		seen[key] = true
		for j, word := range category.Words {
			if normalize(word.English) == "" {
				return nil, fmt.Errorf("category %q: word #%d has no english form", category.Name, j+1)
			}
		}
	}
	return &Catalog{categories: categories}, nil
}

// Categories returns a copy of the categories in file order.
func (c *Catalog) Categories() []Category {
	return slices.Clone(c.categories)
}

func (c *Catalog) Category(name string) (Category, error) {
	key := normalize(name)
	for _, category := range c.categories {
		if normalize(category.Name) == key || normalize(category.NameSpanish) == key {
			return category, nil
		}
	}
	return Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
}

func (c *Catalog) Word(categoryName, english string) (Word, error) {
	category, err := c.Category(categoryName)
	if err != nil {
		return Word{}, err
	}
	key := normalize(english)
	for _, word := range category.Words {
		if normalize(word.English) == key {
			return word, nil
		}
	}
	return Word{}, fmt.Errorf("%w: %s in %s", ErrWordNotFound, english, category.Name)
}

// FindWord searches every category and returns the first match.
func (c *Catalog) FindWord(english string) (Word, Category, error) {
	key := normalize(english)
	for _, category := range c.categories {
		for _, word := range category.Words {
			if normalize(word.English) == key {
				return word, category, nil
			}
		}
	}
	return Word{}, Category{}, fmt.Errorf("%w: %s", ErrWordNotFound, english)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
