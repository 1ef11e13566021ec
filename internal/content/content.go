// Package content holds the constant data rendered by the portfolio:
// profile, navigation, experience, tech stack, projects and footer.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

// Section ids the page renders. Nav entries must point at one of these.
const (
	SectionHome       = "home"
	SectionAbout      = "about"
	SectionExperience = "experience"
	SectionTechStack  = "techstack"
	SectionProjects   = "projects"
)

var knownSections = map[string]bool{
	SectionHome:       true,
	SectionAbout:      true,
	SectionExperience: true,
	SectionTechStack:  true,
	SectionProjects:   true,
}

// ErrUnknownSection means a nav entry targets a section the page lacks.
var ErrUnknownSection = errors.New("nav entry points at an unknown section")

// Site is everything the page shows.
type Site struct {
	Profile    Profile        `yaml:"profile" json:"profile" validate:"required"`
	Nav        []NavItem      `yaml:"nav" json:"nav" validate:"required,min=1,unique=ID,dive"`
	Experience []Experience   `yaml:"experience" json:"experience" validate:"dive"`
	TechStack  []TechCategory `yaml:"techstack" json:"techstack" validate:"dive"`
	Projects   []Project      `yaml:"projects" json:"projects" validate:"dive"`
	Social     []SocialLink   `yaml:"social" json:"social" validate:"dive"`
	Footer     string         `yaml:"footer" json:"footer"`
}

// Profile is the hero and about-me data. Roles feed the typewriter.
type Profile struct {
	Name     string   `yaml:"name" json:"name" validate:"required"`
	FullName string   `yaml:"full_name" json:"full_name"`
	Greeting string   `yaml:"greeting" json:"greeting"`
	Roles    []string `yaml:"roles" json:"roles" validate:"required,min=1"`
	Photo    string   `yaml:"photo" json:"photo"`
	About    []string `yaml:"about" json:"about"`
}

// NavItem is one navigation link; ID names a page section.
type NavItem struct {
	ID    string `yaml:"id" json:"id" validate:"required"`
	Label string `yaml:"label" json:"label" validate:"required"`
	Icon  string `yaml:"icon" json:"icon"`
}

// Experience is one job entry.
type Experience struct {
	Logo     string   `yaml:"logo" json:"logo"`
	Company  string   `yaml:"company" json:"company" validate:"required"`
	Tag      string   `yaml:"tag" json:"tag,omitempty"`
	Role     string   `yaml:"role" json:"role" validate:"required"`
	Duration string   `yaml:"duration" json:"duration"`
	Points   []string `yaml:"points" json:"points"`
}

// TechCategory groups technologies under a heading.
type TechCategory struct {
	Category     string `yaml:"category" json:"category" validate:"required"`
	Technologies []Tech `yaml:"technologies" json:"technologies" validate:"dive"`
}

// Tech is a single technology with an optional icon URL.
type Tech struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	Icon string `yaml:"icon" json:"icon" validate:"omitempty,url"`
}

// Project is a portfolio card. Empty links render disabled buttons.
type Project struct {
	Title        string   `yaml:"title" json:"title" validate:"required"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	Description  string   `yaml:"description" json:"description"`
	Image        string   `yaml:"image" json:"image"`
	GitHub       string   `yaml:"github" json:"github,omitempty" validate:"omitempty,url"`
	Demo         string   `yaml:"demo" json:"demo,omitempty" validate:"omitempty,url"`
}

// SocialLink is a footer contact link.
type SocialLink struct {
	Label string `yaml:"label" json:"label" validate:"required"`
	Href  string `yaml:"href" json:"href" validate:"required"`
	Icon  string `yaml:"icon" json:"icon"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Default returns the site content compiled into the binary.
func Default() (*Site, error) {
	return Parse(defaultSite)
}

// Load reads site content from path, or returns Default when path is
// empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	site, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return site, nil
}

// Parse decodes and validates YAML site content. Unknown keys are errors.
func Parse(data []byte) (*Site, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var site Site
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// Validate checks required fields and that navigation only targets
// sections the page renders.
func (s *Site) Validate() error {
	if err := getValidator().Struct(s); err != nil {
		return fmt.Errorf("invalid content: %w", err)
	}
	for _, item := range s.Nav {
		if !knownSections[item.ID] {
			return fmt.Errorf("%w: %q", ErrUnknownSection, item.ID)
		}
	}
	return nil
}

// AboutHTML renders the about paragraphs. Markdown emphasis becomes
// <strong>, which the stylesheet shows as a highlight. Raw HTML in the
// source is dropped.
func (s *Site) AboutHTML() (template.HTML, error) {
	var buf bytes.Buffer
	md := markdown()
	for _, para := range s.Profile.About {
		if err := md.Convert([]byte(para), &buf); err != nil {
			return "", fmt.Errorf("render about: %w", err)
		}
	}
	return template.HTML(buf.String()), nil
}

var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func markdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(goldmark.WithExtensions(extension.Typographer))
	})
	return markdownInstance
}
