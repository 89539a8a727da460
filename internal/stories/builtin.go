package stories

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.md
var builtinFS embed.FS

type frontMatter struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Subtitle    string   `yaml:"subtitle"`
	Category    string   `yaml:"category"`
	SourceType  string   `yaml:"sourceType"`
	HeroImage   string   `yaml:"heroImage"`
	HeroCaption string   `yaml:"heroCaption"`
	Excerpt     string   `yaml:"excerpt"`
	ReadTime    string   `yaml:"readTime"`
	Year        string   `yaml:"year"`
	TextBy      string   `yaml:"textBy"`
	ImagesBy    string   `yaml:"imagesBy"`
	Region      string   `yaml:"region"`
	Tags        []string `yaml:"tags"`
	Sources     []string `yaml:"sources"`
	Facts       []string `yaml:"facts"`
}

// BuiltinStories returns the stories shipped with the binary, in file name order.
func BuiltinStories() ([]Story, error) {
	return loadMarkdownStories(builtinFS, "content")
}

func loadMarkdownStories(fsys fs.FS, dir string) ([]Story, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("stories: read %s: %w", dir, err)
	}
	out := make([]Story, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("stories: read %s: %w", entry.Name(), err)
		}
		story, err := parseMarkdownStory(strings.TrimSuffix(entry.Name(), ".md"), string(data))
		if err != nil {
			return nil, err
		}
		out = append(out, story)
	}
	return out, nil
}

func parseMarkdownStory(name, input string) (Story, error) {
	fm, body := splitFrontMatter(input)
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Story{}, fmt.Errorf("stories: parse front matter %s: %w", name, err)
		}
	}
	slug := strings.TrimSpace(front.Slug)
	if slug == "" {
		slug = name
	}
	// Sheet rows use ";;" inside one cell; front matter may too.
	sources := splitOn(strings.Join(front.Sources, ";;"), ";;")
	facts := splitOn(strings.Join(front.Facts, ";;"), ";;")
	return Story{
		Slug:        slug,
		Title:       strings.TrimSpace(front.Title),
		Subtitle:    strings.TrimSpace(front.Subtitle),
		Category:    strings.TrimSpace(front.Category),
		SourceType:  strings.TrimSpace(front.SourceType),
		HeroImage:   strings.TrimSpace(front.HeroImage),
		HeroCaption: strings.TrimSpace(front.HeroCaption),
		Excerpt:     strings.TrimSpace(front.Excerpt),
		Body:        body,
		ReadTime:    strings.TrimSpace(front.ReadTime),
		Year:        strings.TrimSpace(front.Year),
		TextBy:      strings.TrimSpace(front.TextBy),
		ImagesBy:    strings.TrimSpace(front.ImagesBy),
		Sources:     sources,
		Facts:       facts,
		Tags:        splitOn(strings.Join(front.Tags, ","), ","),
		Region:      strings.TrimSpace(front.Region),
		Images:      []Image{},
	}, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n\r")
		}
	}
	return "", input
}
