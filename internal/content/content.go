// Package content holds the site's constant data: company details, the
// service and industry catalogs, team, timeline and the markdown copy blocks.
//
// The data ships embedded in the binary and is parsed once at startup. A
// Catalog is read-only after Load returns; accessors hand out copies so
// callers cannot mutate shared state.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"slices"

	"github.com/DukeRupert/futureforward/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Block names available through Catalog.Block.
const (
	BlockMission = "mission"
	BlockVision  = "vision"
	BlockValues  = "values"
	BlockAbout   = "about"
)

type catalogFile struct {
	Company      domain.Company       `yaml:"company"`
	Achievements []domain.Achievement `yaml:"achievements"`
	Services     []domain.Service     `yaml:"services"`
	Industries   []domain.Industry    `yaml:"industries"`
	Team         []domain.TeamMember  `yaml:"team"`
	Milestones   []domain.Milestone   `yaml:"milestones"`
	Blocks       map[string]string    `yaml:"blocks"`
}

// Catalog is the parsed, immutable site content.
type Catalog struct {
	company      domain.Company
	achievements []domain.Achievement
	services     []domain.Service
	industries   []domain.Industry
	team         []domain.TeamMember
	milestones   []domain.Milestone
	blocks       map[string]template.HTML
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse builds a Catalog from YAML and renders its markdown blocks.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Typographer))
	blocks := make(map[string]template.HTML, len(f.Blocks))
	for name, src := range f.Blocks {
		var buf bytes.Buffer
		if err := md.Convert([]byte(src), &buf); err != nil {
			return nil, fmt.Errorf("render block %q: %w", name, err)
		}
		// Block sources are compiled into the binary; goldmark's default
		// renderer already drops raw HTML.
		blocks[name] = template.HTML(buf.String())
	}

	return &Catalog{
		company:      f.Company,
		achievements: f.Achievements,
		services:     f.Services,
		industries:   f.Industries,
		team:         f.Team,
		milestones:   f.Milestones,
		blocks:       blocks,
	}, nil
}

func validate(f *catalogFile) error {
	if f.Company.Name == "" {
		return fmt.Errorf("catalog: company name is required")
	}
	seen := make(map[int]bool, len(f.Services))
	for _, s := range f.Services {
		if s.ID == 0 || s.Title == "" {
			return fmt.Errorf("catalog: service %d needs an id and title", s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("catalog: duplicate service id %d", s.ID)
		}
		seen[s.ID] = true
	}
	clear(seen)
	for _, in := range f.Industries {
		if in.ID == 0 || in.Name == "" {
			return fmt.Errorf("catalog: industry %d needs an id and name", in.ID)
		}
		if seen[in.ID] {
			return fmt.Errorf("catalog: duplicate industry id %d", in.ID)
		}
		seen[in.ID] = true
	}
	return nil
}

func (c *Catalog) Company() domain.Company { return c.company }

func (c *Catalog) Achievements() []domain.Achievement { return slices.Clone(c.achievements) }

// Services returns the services in display order.
func (c *Catalog) Services() []domain.Service {
	out := make([]domain.Service, len(c.services))
	for i, s := range c.services {
		s.Features = slices.Clone(s.Features)
		out[i] = s
	}
	return out
}

// Industries returns the industries in display order.
func (c *Catalog) Industries() []domain.Industry {
	out := make([]domain.Industry, len(c.industries))
	for i, in := range c.industries {
		in.Solutions = slices.Clone(in.Solutions)
		in.CaseStudies = slices.Clone(in.CaseStudies)
		out[i] = in
	}
	return out
}

func (c *Catalog) Team() []domain.TeamMember { return slices.Clone(c.team) }

func (c *Catalog) Milestones() []domain.Milestone { return slices.Clone(c.milestones) }

// Block returns a rendered markdown block, or "" when it does not exist.
func (c *Catalog) Block(name string) template.HTML {
	return c.blocks[name]
}
