package report

import "financas/internal/core"

// categoryIndex resolves category references in O(1). References are matched
// by id first; transactions imported from the legacy schema may carry the
// category name instead of an id, so an exact name match is the fallback.
type categoryIndex struct {
	byID   map[string]core.Category
	byName map[string]core.Category
}

func newCategoryIndex(cats []core.Category) categoryIndex {
	ix := categoryIndex{
		byID:   make(map[string]core.Category, len(cats)),
		byName: make(map[string]core.Category, len(cats)),
	}
	for _, c := range cats {
		ix.byID[c.ID] = c
		if _, dup := ix.byName[c.Name]; !dup {
			ix.byName[c.Name] = c
		}
	}
	return ix
}

func (ix categoryIndex) resolve(ref string) (core.Category, bool) {
	if c, ok := ix.byID[ref]; ok {
		return c, true
	}
	c, ok := ix.byName[ref]
	return c, ok
}

// display returns the category's name and color, falling back to the given
// label and the neutral color when the reference cannot be resolved.
func (ix categoryIndex) display(ref, fallbackName string) (name, color string) {
	if c, ok := ix.resolve(ref); ok {
		name = c.Name
		color = c.Color
		if color == "" {
			color = FallbackColor
		}
		return name, color
	}
	return fallbackName, FallbackColor
}

// accountIndex resolves account ids to their entities.
type accountIndex struct {
	byID map[string]core.Account
}

func newAccountIndex(accounts []core.Account) accountIndex {
	ix := accountIndex{byID: make(map[string]core.Account, len(accounts))}
	for _, a := range accounts {
		ix.byID[a.ID] = a
	}
	return ix
}

func (ix accountIndex) name(id string) string {
	if a, ok := ix.byID[id]; ok {
		return a.Name
	}
	return UnknownAccountName
}
