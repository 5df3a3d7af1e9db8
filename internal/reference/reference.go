// Package reference holds the static program planning tables: PPS
// programs with their hours and FTEs, PAC line items, fiscal years and
// workplan models. The data ships embedded in the binary.
package reference

import (
	_ "embed"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed programs.yaml
var programsYAML []byte

// DefaultProgramTitle is shown for program codes missing from the catalog.
const DefaultProgramTitle = "Program Details"

// Program is one PPS program line.
type Program struct {
	Code        string  `yaml:"code"         json:"code"`
	Title       string  `yaml:"title"        json:"title"`
	Hours       float64 `yaml:"hours"        json:"hours"`
	PlannedFTEs float64 `yaml:"planned_ftes" json:"planned_ftes"`
}

// PacItem is one program assignment code under a program.
type PacItem struct {
	PAC         string  `yaml:"pac"          json:"pac"`
	Description string  `yaml:"description"  json:"description"`
	Status      string  `yaml:"status"       json:"status"`
	Hours       float64 `yaml:"hours"        json:"hours"`
	PlannedFTEs float64 `yaml:"planned_ftes" json:"planned_ftes"`
}

// WorkplanModel is a fiscal-year workplan template.
type WorkplanModel struct {
	ID          string `yaml:"id"          json:"id"`
	Description string `yaml:"description" json:"description"`
	Year        int    `yaml:"year"        json:"year"`
	Status      string `yaml:"status"      json:"status"`
	Created     string `yaml:"created"     json:"created"`
	Modified    string `yaml:"modified"    json:"modified"`
}

// Factor scales hours and FTEs.
type Factor struct {
	Hours       float64 `yaml:"hours"        json:"hours"`
	PlannedFTEs float64 `yaml:"planned_ftes" json:"planned_ftes"`
}

type pacTemplate struct {
	Suffix      string  `yaml:"suffix"`
	Activity    string  `yaml:"activity"`
	Status      string  `yaml:"status"`
	Hours       float64 `yaml:"hours"`
	PlannedFTEs float64 `yaml:"planned_ftes"`
}

// FiscalYears describes the current planning year and the archive range.
type FiscalYears struct {
	Current        int `yaml:"current"         json:"current"`
	Upcoming       int `yaml:"upcoming"        json:"upcoming"`
	HistoricalFrom int `yaml:"historical_from" json:"historical_from"`
}

// Catalog is the parsed reference data.
type Catalog struct {
	FiscalYears FiscalYears `yaml:"fiscal_years"`
	Adjustments struct {
		Projected  Factor `yaml:"projected"`
		Historical Factor `yaml:"historical"`
	} `yaml:"adjustments"`
	Programs        []Program            `yaml:"programs"`
	PacItems        map[string][]PacItem `yaml:"pac_items"`
	DefaultPacItems []pacTemplate        `yaml:"default_pac_items"`
	WorkplanModels  []WorkplanModel      `yaml:"workplan_models"`
}

// Parse decodes and checks a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse reference data: %w", err)
	}
	if c.FiscalYears.Current == 0 {
		return nil, fmt.Errorf("parse reference data: fiscal_years.current is required")
	}
	seen := make(map[string]bool, len(c.Programs))
	for _, p := range c.Programs {
		if p.Code == "" {
			return nil, fmt.Errorf("parse reference data: program without code")
		}
		if seen[p.Code] {
			return nil, fmt.Errorf("parse reference data: duplicate program %q", p.Code)
		}
		seen[p.Code] = true
	}
	return &c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded file is
// malformed, which the package tests rule out.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(programsYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// FactorFor returns the scaling applied to base figures for year: projected
// after the current year, historical before it, identity otherwise.
func (c *Catalog) FactorFor(year int) Factor {
	switch {
	case year > c.FiscalYears.Current:
		return c.Adjustments.Projected
	case year < c.FiscalYears.Current:
		return c.Adjustments.Historical
	default:
		return Factor{Hours: 1, PlannedFTEs: 1}
	}
}

// ProgramsForYear returns a copy of the program table scaled for year.
func (c *Catalog) ProgramsForYear(year int) []Program {
	f := c.FactorFor(year)
	out := make([]Program, len(c.Programs))
	for i, p := range c.Programs {
		p.Hours = round2(p.Hours * f.Hours)
		p.PlannedFTEs = round2(p.PlannedFTEs * f.PlannedFTEs)
		out[i] = p
	}
	return out
}

// Program looks up a program by code.
func (c *Catalog) Program(code string) (Program, bool) {
	for _, p := range c.Programs {
		if p.Code == code {
			return p, true
		}
	}
	return Program{}, false
}

// Title returns the program title for code or DefaultProgramTitle.
func (c *Catalog) Title(code string) string {
	if p, ok := c.Program(code); ok {
		return p.Title
	}
	return DefaultProgramTitle
}

// PacItemsFor returns the PAC breakdown of a program. Programs without an
// explicit breakdown get the generic lines built from the templates.
func (c *Catalog) PacItemsFor(code string) []PacItem {
	if items, ok := c.PacItems[code]; ok {
		out := make([]PacItem, len(items))
		copy(out, items)
		return out
	}
	title := strings.ToUpper(c.Title(code))
	out := make([]PacItem, 0, len(c.DefaultPacItems))
	for _, t := range c.DefaultPacItems {
		out = append(out, PacItem{
			PAC:         code + t.Suffix,
			Description: title + " - " + t.Activity,
			Status:      t.Status,
			Hours:       t.Hours,
			PlannedFTEs: t.PlannedFTEs,
		})
	}
	return out
}

// HistoricalYears lists the archived fiscal years, newest first.
func (c *Catalog) HistoricalYears() []int {
	var years []int
	for y := c.FiscalYears.Current - 1; y >= c.FiscalYears.HistoricalFrom; y-- {
		years = append(years, y)
	}
	return years
}

// Models returns the workplan models, newest year first.
func (c *Catalog) Models() []WorkplanModel {
	out := make([]WorkplanModel, len(c.WorkplanModels))
	copy(out, c.WorkplanModels)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

// ── helpers shared by the API and the client ──

// SearchPrograms keeps programs whose code or title contains q,
// case-insensitively. An empty q keeps everything.
func SearchPrograms(programs []Program, q string) []Program {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return programs
	}
	var out []Program
	for _, p := range programs {
		if strings.Contains(strings.ToLower(p.Code), q) || strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, p)
		}
	}
	return out
}

// ProgramTotals sums hours and FTEs.
func ProgramTotals(programs []Program) (hours, ftes float64) {
	for _, p := range programs {
		hours += p.Hours
		ftes += p.PlannedFTEs
	}
	return round2(hours), round2(ftes)
}

// PacTotals sums hours and FTEs.
func PacTotals(items []PacItem) (hours, ftes float64) {
	for _, it := range items {
		hours += it.Hours
		ftes += it.PlannedFTEs
	}
	return round2(hours), round2(ftes)
}

var yearPattern = regexp.MustCompile(`(\d{4})`)

// YearFromName extracts the first four-digit year from a workplan name
// such as "Workplan 0 - 2025.0", or returns fallback.
func YearFromName(name string, fallback int) int {
	m := yearPattern.FindStringSubmatch(name)
	if m == nil {
		return fallback
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return fallback
	}
	return y
}

// WorkplanName formats the display name of a fiscal-year workplan.
func WorkplanName(year int) string {
	return fmt.Sprintf("Workplan 0 - %d.0", year)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
