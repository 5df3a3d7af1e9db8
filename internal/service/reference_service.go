package service

import (
	"errors"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/reference"
)

// ErrProgramNotFound is returned for an unknown PPS program code.
var ErrProgramNotFound = errors.New("program not found")

// ProgramList is the PPS program table of one fiscal year.
type ProgramList struct {
	Year        int                 `json:"year"`
	Programs    []reference.Program `json:"programs"`
	Total       int                 `json:"total"`
	TotalHours  float64             `json:"total_hours"`
	TotalFTEs   float64             `json:"total_ftes"`
	Factor      reference.Factor    `json:"factor"`
	CurrentYear int                 `json:"current_year"`
}

// ProgramDetail is one program with its PAC breakdown.
type ProgramDetail struct {
	Year       int                 `json:"year"`
	Program    reference.Program   `json:"program"`
	PacItems   []reference.PacItem `json:"pac_items"`
	TotalHours float64             `json:"total_hours"`
	TotalFTEs  float64             `json:"total_ftes"`
}

// ReferenceService serves the static PPS planning tables.
type ReferenceService interface {
	// Programs returns the table for year (0 means the current fiscal
	// year), filtered by search over code and title.
	Programs(year int, search string) *ProgramList
	Program(code string, year int) (*ProgramDetail, error)
	Catalog() *reference.Catalog
}

type referenceService struct {
	catalog *reference.Catalog
}

// NewReferenceService creates a ReferenceService over catalog.
func NewReferenceService(catalog *reference.Catalog) ReferenceService {
	return &referenceService{catalog: catalog}
}

func (s *referenceService) Programs(year int, search string) *ProgramList {
	year = s.year(year)
	programs := reference.SearchPrograms(s.catalog.ProgramsForYear(year), search)
	if programs == nil {
		programs = []reference.Program{}
	}
	hours, ftes := reference.ProgramTotals(programs)
	return &ProgramList{
		Year:        year,
		Programs:    programs,
		Total:       len(programs),
		TotalHours:  hours,
		TotalFTEs:   ftes,
		Factor:      s.catalog.FactorFor(year),
		CurrentYear: s.catalog.FiscalYears.Current,
	}
}

func (s *referenceService) Program(code string, year int) (*ProgramDetail, error) {
	year = s.year(year)
	var program reference.Program
	found := false
	for _, p := range s.catalog.ProgramsForYear(year) {
		if p.Code == code {
			program, found = p, true
			break
		}
	}
	if !found {
		return nil, ErrProgramNotFound
	}

	items := s.catalog.PacItemsFor(code)
	hours, ftes := reference.PacTotals(items)
	return &ProgramDetail{
		Year:       year,
		Program:    program,
		PacItems:   items,
		TotalHours: hours,
		TotalFTEs:  ftes,
	}, nil
}

func (s *referenceService) Catalog() *reference.Catalog { return s.catalog }

func (s *referenceService) year(y int) int {
	if y <= 0 {
		return s.catalog.FiscalYears.Current
	}
	return y
}
