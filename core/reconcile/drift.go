package reconcile

import (
	"fmt"
	"sort"
)

// CompareConfigs compares two blocking-group snapshots and reports the groups
// that differ. Only the nine list fields count towards drift.
func CompareConfigs(a, b []BlockingGroup) (*DriftResult, error) {
	return CompareConfigsWithOptions(a, b, DriftOptions{})
}

// CompareConfigsWithOptions is CompareConfigs with near-match hints.
func CompareConfigsWithOptions(a, b []BlockingGroup, opts DriftOptions) (*DriftResult, error) {
	indexA, err := indexGroups(a, SideA)
	if err != nil {
		return nil, err
	}
	indexB, err := indexGroups(b, SideB)
	if err != nil {
		return nil, err
	}

	// Build union of group names
	names := make([]string, 0, len(indexA)+len(indexB))
	for name := range indexA {
		names = append(names, name)
	}
	for name := range indexB {
		if _, ok := indexA[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	result := &DriftResult{Groups: []GroupDrift{}}
	for _, name := range names {
		ga, okA := indexA[name]
		gb, okB := indexB[name]

		var drift GroupDrift
		switch {
		case !okA:
			drift = GroupDrift{Name: name, Missing: SideA}
		case !okB:
			drift = GroupDrift{Name: name, Missing: SideB}
		default:
			drift = compareGroup(ga, gb, opts)
			if len(drift.Fields) == 0 {
				continue
			}
		}

		result.Groups = append(result.Groups, drift)
		result.Count++
	}

	return result, nil
}

// indexGroups maps groups by name. Later entries win on duplicate names.
func indexGroups(groups []BlockingGroup, side Side) (map[string]*BlockingGroup, error) {
	index := make(map[string]*BlockingGroup, len(groups))
	for i := range groups {
		if groups[i].Name == "" {
			return nil, fmt.Errorf("%w: group %d on side %s has no name", ErrMalformedInput, i, side)
		}
		index[groups[i].Name] = &groups[i]
	}
	return index, nil
}

// compareGroup compares the list fields of two groups sharing a name.
func compareGroup(a, b *BlockingGroup, opts DriftOptions) GroupDrift {
	drift := GroupDrift{Name: a.Name}

	for _, field := range ListFields {
		la, lb := a.List(field), b.List(field)
		if ListsEqual(la, lb) {
			continue
		}

		onlyA, onlyB := SortedDiff(la, lb)
		drift.Fields = append(drift.Fields, FieldDrift{
			Field:       field,
			OnlyA:       onlyA,
			OnlyB:       onlyB,
			NearMatches: nearMatches(onlyA, onlyB, opts.HintThreshold),
		})
	}

	return drift
}
