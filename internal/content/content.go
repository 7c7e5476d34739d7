// Package content holds the portfolio copy rendered by the site and the
// YAML file format used to override it.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type Portfolio struct {
	Profile    Profile      `yaml:"profile"`
	Nav        []NavLink    `yaml:"nav"`
	Experience []Experience `yaml:"experience"`
	Projects   []Project    `yaml:"projects"`
	Skills     []SkillGroup `yaml:"skills"`
	Tools      []string     `yaml:"tools"`
	Education  []Education  `yaml:"education"`
	Socials    []Social     `yaml:"socials"`
}

type Profile struct {
	Name       string   `yaml:"name"`
	Headline   string   `yaml:"headline"`
	Intro      string   `yaml:"intro"`
	About      []string `yaml:"about"`
	Photo      string   `yaml:"photo"`
	Experience string   `yaml:"experience"`
	Location   string   `yaml:"location"`
	Email      string   `yaml:"email"`
	Phone      string   `yaml:"phone"`
	Freelance  string   `yaml:"freelance"`
}

// NavLink is one entry of the section navigation. ID is the anchor of the
// section it scrolls to.
type NavLink struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

type Experience struct {
	Role        string `yaml:"role"`
	Company     string `yaml:"company"`
	Location    string `yaml:"location"`
	Period      string `yaml:"period"`
	Description string `yaml:"description"`
}

// Project is a showcase card. Images feed the card's carousel.
type Project struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Stack       []string `yaml:"stack"`
	Description string   `yaml:"description"`
	Images      []string `yaml:"images"`
	Link        string   `yaml:"link,omitempty"`
}

type SkillGroup struct {
	Title  string  `yaml:"title"`
	Skills []Skill `yaml:"skills"`
}

// Skill is a named proficiency rendered as an animated bar. Level is a
// percentage.
type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

type Education struct {
	Title        string   `yaml:"title"`
	Institution  string   `yaml:"institution"`
	Location     string   `yaml:"location"`
	Period       string   `yaml:"period"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements,omitempty"`
}

type Social struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid content")

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Load reads a YAML file and lays it over base. Sections missing from the
// file keep the values of base.
func Load(path string, base Portfolio) (Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Portfolio{}, fmt.Errorf("read content file: %w", err)
	}

	return Decode(data, base)
}

// Decode parses YAML content over base and validates the result.
func Decode(data []byte, base Portfolio) (Portfolio, error) {
	p := base
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Portfolio{}, fmt.Errorf("parse content: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Portfolio{}, err
	}

	return p, nil
}

// Encode renders p as YAML.
func Encode(p Portfolio) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}

	return buf.Bytes(), nil
}

// Validate checks the invariants the templates and the showcase rely on.
func (p Portfolio) Validate() error {
	var problems []string

	if strings.TrimSpace(p.Profile.Name) == "" {
		problems = append(problems, "profile.name is required")
	}

	navIDs := make(map[string]bool)
	for i, link := range p.Nav {
		if link.ID == "" || link.Label == "" {
			problems = append(problems, fmt.Sprintf("nav[%d] needs an id and a label", i))
		}
		if navIDs[link.ID] {
			problems = append(problems, fmt.Sprintf("nav[%d] repeats id %q", i, link.ID))
		}
		navIDs[link.ID] = true
	}

	slugs := make(map[string]bool)
	for i, project := range p.Projects {
		if !slugPattern.MatchString(project.Slug) {
			problems = append(problems, fmt.Sprintf("projects[%d] has bad slug %q", i, project.Slug))
		}
		if slugs[project.Slug] {
			problems = append(problems, fmt.Sprintf("projects[%d] repeats slug %q", i, project.Slug))
		}
		slugs[project.Slug] = true

		if project.Title == "" {
			problems = append(problems, fmt.Sprintf("projects[%d] needs a title", i))
		}
	}

	for i, group := range p.Skills {
		for j, skill := range group.Skills {
			if skill.Level < 0 || skill.Level > 100 {
				problems = append(problems,
					fmt.Sprintf("skills[%d].skills[%d] level %d is outside 0-100", i, j, skill.Level))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}

	return nil
}

// Project returns the project with the given slug.
func (p Portfolio) Project(slug string) (Project, bool) {
	for _, project := range p.Projects {
		if project.Slug == slug {
			return project, true
		}
	}

	return Project{}, false
}

// Galleries maps every project slug to its images.
func (p Portfolio) Galleries() map[string][]string {
	galleries := make(map[string][]string, len(p.Projects))
	for _, project := range p.Projects {
		galleries[project.Slug] = project.Images
	}

	return galleries
}

// HasSection reports whether id is one of the navigation anchors.
func (p Portfolio) HasSection(id string) bool {
	for _, link := range p.Nav {
		if link.ID == id {
			return true
		}
	}

	return false
}
