package services

import "eshopadmin/internal/domain"

// Selection tracks the rows a tab currently displays and the single row, if
// any, that the next update or delete targets.
type Selection struct {
	displayed map[int64]struct{}
	selected  int64
	has       bool
}

// Reset replaces the displayed set and drops the selection.
func (s *Selection) Reset(ids []int64) {
	s.displayed = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s.displayed[id] = struct{}{}
	}
	s.Clear()
}

func (s *Selection) Select(id int64) error {
	if _, ok := s.displayed[id]; !ok {
		return domain.ErrNotDisplayed
	}
	s.selected, s.has = id, true
	return nil
}

func (s *Selection) Selected() (int64, bool) { return s.selected, s.has }

func (s *Selection) IsSelected(id int64) bool { return s.has && s.selected == id }

func (s *Selection) Clear() { s.selected, s.has = 0, false }

// target returns the selected id or ErrNoSelection.
func (s *Selection) target() (int64, error) {
	if !s.has {
		return 0, domain.ErrNoSelection
	}
	return s.selected, nil
}
