package services

import (
	"strings"

	"golang.org/x/text/cases"

	"sightd/internal/models"
)

// Kind labels that select every sight.
const (
	KindAll   = "all"
	KindAllJa = "すべて"
)

func IsAllKind(kind string) bool {
	return kind == "" || kind == KindAll || kind == KindAllJa
}

// ByKind returns the sights whose kind equals kind exactly. The "all"
// labels return the input unchanged.
func ByKind(all []*models.Sight, kind string) []*models.Sight {
	if IsAllKind(kind) {
		return all
	}
	filtered := make([]*models.Sight, 0, len(all))
	for _, s := range all {
		if s.Kind == kind {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// ByKeyword returns the sights whose name or description contains keyword,
// ignoring case. An empty keyword returns the input unchanged.
func ByKeyword(all []*models.Sight, keyword string) []*models.Sight {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return all
	}
	folder := cases.Fold()
	needle := folder.String(keyword)

	filtered := make([]*models.Sight, 0, len(all))
	for _, s := range all {
		if strings.Contains(folder.String(s.Name), needle) || strings.Contains(folder.String(s.Description), needle) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
