package models

import "sort"

// ZoneDefinition описывает зону, близость к которой отслеживается.
// Location == nil, если координаты зоны на момент оценки неизвестны.
type ZoneDefinition struct {
	Name     string      `json:"name"`
	Location *Coordinate `json:"location,omitempty"`
}

// OverrideZoneSet - набор зон (работа, школа), в которых источник считается
// находящимся в конечной точке, а не в пути
type OverrideZoneSet map[string]struct{}

// NewOverrideZoneSet создает набор из списка имен зон
func NewOverrideZoneSet(names ...string) OverrideZoneSet {
	set := make(OverrideZoneSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Contains сообщает, входит ли зона в набор. Источник без зоны (nil) не входит никуда.
func (s OverrideZoneSet) Contains(zone *string) bool {
	if zone == nil {
		return false
	}
	_, ok := s[*zone]
	return ok
}

// Names возвращает отсортированный список зон
func (s OverrideZoneSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
