package annotate_test

import (
	"github.com/tartampluch/go-almanac/internal/civil"
	"github.com/tartampluch/go-almanac/internal/lunar"
)

// stubConverter answers from a fixed table. Days not in the table are
// ordinary non-geng days without a term.
type stubConverter struct {
	infos map[string]lunar.Info
	geng  map[string]bool
	fail  map[string]bool
	calls int
}

func newStub() *stubConverter {
	return &stubConverter{
		infos: map[string]lunar.Info{},
		geng:  map[string]bool{},
		fail:  map[string]bool{},
	}
}

func (s *stubConverter) withTerm(date, term string) *stubConverter {
	info := s.infos[date]
	info.SolarTerm = term
	s.infos[date] = info
	return s
}

func (s *stubConverter) withGeng(dates ...string) *stubConverter {
	for _, d := range dates {
		s.geng[d] = true
	}
	return s
}

func (s *stubConverter) Convert(d civil.Date) (lunar.Info, error) {
	s.calls++
	key := d.Format()
	if s.fail[key] {
		return lunar.Info{}, &lunar.OutOfRangeError{Date: d}
	}
	info, ok := s.infos[key]
	if !ok {
		info = lunar.Info{MonthName: "三月", DayName: "初三"}
	}
	if info.StemBranchDay == "" {
		info.StemBranchDay = "甲子"
		if s.geng[key] {
			info.StemBranchDay = "庚午"
		}
	}
	return info, nil
}

func mustParse(value string) civil.Date {
	d, err := civil.Parse(value)
	if err != nil {
		panic(err)
	}
	return d
}
