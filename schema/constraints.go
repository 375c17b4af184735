package schema

// EnforceSingleSelection returns a copy of set in which every single-selection
// attribute is held by at most one column. The first holder in set order keeps
// the attribute. Applying it to an already consistent set changes nothing.
func EnforceSingleSelection(set ColumnSet) ColumnSet {
	out := set.Clone()
	held := make(map[Attribute]bool)
	for i := range out {
		out[i].Attributes = canonical(out[i].Attributes)
		for _, a := range out[i].Attributes {
			if !IsSingleSelection(a) {
				continue
			}
			if held[a] {
				out[i] = out[i].Without(a)
				continue
			}
			held[a] = true
		}
	}
	return out
}

// ToggleAttribute turns tag on or off for the named column. Turning a
// single-selection tag on moves it away from its previous holder. Unknown tags
// and columns leave the set untouched.
func ToggleAttribute(set ColumnSet, column, tag string, on bool) ColumnSet {
	a, ok := ParseAttribute(tag)
	if !ok {
		return set
	}
	idx := set.Index(column)
	if idx < 0 {
		return set
	}

	out := set.Clone()
	if !on {
		out[idx] = out[idx].Without(a)
		return EnforceSingleSelection(out)
	}

	if IsSingleSelection(a) {
		for i := range out {
			if i != idx {
				out[i] = out[i].Without(a)
			}
		}
	}
	out[idx] = out[idx].With(a)
	return EnforceSingleSelection(out)
}
