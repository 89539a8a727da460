// Package stories serves long-form cultural essays. Bodies are markdown or HTML and are
// rendered once per load with glossary terms linked.
package stories

import (
	"html/template"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// RelatedLimit caps Related.
const RelatedLimit = 3

// Story is one essay.
type Story struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Category    string   `json:"category,omitempty"`
	SourceType  string   `json:"sourceType,omitempty"`
	HeroImage   string   `json:"heroImage,omitempty"`
	HeroCaption string   `json:"heroCaption,omitempty"`
	Excerpt     string   `json:"excerpt,omitempty"`
	Body        string   `json:"body,omitempty"`
	ReadTime    string   `json:"readTime,omitempty"`
	Year        string   `json:"year,omitempty"`
	TextBy      string   `json:"textBy,omitempty"`
	ImagesBy    string   `json:"imagesBy,omitempty"`
	Sources     []string `json:"sources"`
	Facts       []string `json:"facts"`
	Tags        []string `json:"tags"`
	Region      string   `json:"region,omitempty"`
	Images      []Image  `json:"images"`

	// BodyHTML is Body rendered, sanitised and glossary-linked.
	BodyHTML template.HTML `json:"-"`
}

// Image is a gallery image attached to a story.
type Image struct {
	Order   int    `json:"order"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

var culturalKeywords = []string{
	"gnawa", "amazigh", "berber", "artisan", "maalem", "zellige",
	"medina", "kasbah", "riad", "souk", "hammam", "khettara",
}

// CulturalEntities returns the tags naming a Moroccan cultural element.
func (s Story) CulturalEntities() []string {
	var out []string
	for _, tag := range s.Tags {
		lower := strings.ToLower(tag)
		for _, kw := range culturalKeywords {
			if strings.Contains(lower, kw) {
				out = append(out, tag)
				break
			}
		}
	}
	return out
}

// ParseRow maps a Stories sheet row.
func ParseRow(row map[string]string) Story {
	return Story{
		Slug:        strings.TrimSpace(row["slug"]),
		Title:       strings.TrimSpace(row["title"]),
		Subtitle:    strings.TrimSpace(row["subtitle"]),
		Category:    strings.TrimSpace(row["category"]),
		SourceType:  strings.TrimSpace(row["sourceType"]),
		HeroImage:   strings.TrimSpace(row["heroImage"]),
		HeroCaption: strings.TrimSpace(row["heroCaption"]),
		Excerpt:     strings.TrimSpace(row["excerpt"]),
		Body:        row["body"],
		ReadTime:    strings.TrimSpace(row["readTime"]),
		Year:        strings.TrimSpace(row["year"]),
		TextBy:      strings.TrimSpace(row["textBy"]),
		ImagesBy:    strings.TrimSpace(row["imagesBy"]),
		Sources:     splitOn(row["sources"], ";;"),
		Facts:       splitOn(row["the_facts"], ";;"),
		Tags:        splitOn(row["tags"], ","),
		Region:      strings.TrimSpace(row["region"]),
		Images:      []Image{},
	}
}

// isVisible keeps rows with no status or status "published".
func isVisible(row map[string]string) bool {
	status := strings.ToLower(strings.TrimSpace(row["status"]))
	return status == "" || status == "published"
}

// groupImages maps Story_Images rows to slug, ordered by image_order.
func groupImages(rows []map[string]string) map[string][]Image {
	out := make(map[string][]Image)
	for _, row := range rows {
		slug := strings.TrimSpace(row["story_slug"])
		url := strings.TrimSpace(row["image_url"])
		if slug == "" || url == "" {
			continue
		}
		order, _ := strconv.Atoi(strings.TrimSpace(row["image_order"]))
		out[slug] = append(out[slug], Image{Order: order, URL: url, Caption: strings.TrimSpace(row["caption"])})
	}
	for slug := range out {
		images := out[slug]
		sort.SliceStable(images, func(i, j int) bool { return images[i].Order < images[j].Order })
	}
	return out
}

// Related returns up to RelatedLimit other stories sharing a category, a tag
// (case-insensitively) or a region with s, in the order of all.
func Related(s Story, all []Story) []Story {
	tags := lowerSet(s.Tags)
	out := make([]Story, 0, RelatedLimit)
	for _, other := range all {
		if len(out) == RelatedLimit {
			break
		}
		if other.Slug == s.Slug {
			continue
		}
		if sameNonEmpty(other.Category, s.Category) || sameNonEmpty(other.Region, s.Region) || sharesTag(other.Tags, tags) {
			out = append(out, other)
		}
	}
	return out
}

func sameNonEmpty(a, b string) bool {
	return a != "" && a == b
}

func sharesTag(tags []string, set map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := set[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

func splitOn(value, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(value, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func cloneStory(s Story) Story {
	out := s
	out.Sources = slices.Clone(s.Sources)
	out.Facts = slices.Clone(s.Facts)
	out.Tags = slices.Clone(s.Tags)
	out.Images = slices.Clone(s.Images)
	return out
}

func cloneStories(src []Story) []Story {
	out := make([]Story, len(src))
	for i, s := range src {
		out[i] = cloneStory(s)
	}
	return out
}
