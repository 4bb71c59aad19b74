package concepts

// QCodeSet is a deduplicated, capped collection of Wikidata identifiers.
// Order records which codes survive truncation, nothing more.
type QCodeSet []string

// Contains reports whether the set holds the given code.
func (s QCodeSet) Contains(code string) bool {
	for _, c := range s {
		if c == code {
			return true
		}
	}
	return false
}

// MapToQCodes maps concrete nouns, themes, and emotions to a capped Q-code
// set. Truncation keeps concrete-element codes first, then theme codes,
// then emotion codes: direct noun matches make the most defensible
// pairings. Unmapped terms contribute nothing.
func MapToQCodes(elements, themes, emotions []string) QCodeSet {
	var out QCodeSet
	seen := make(map[string]bool)

	add := func(codes []string) {
		for _, code := range codes {
			if len(out) >= MaxQCodes {
				return
			}
			if seen[code] {
				continue
			}
			seen[code] = true
			out = append(out, code)
		}
	}

	for _, noun := range elements {
		add(ObjectQCodes(noun))
	}
	for _, theme := range themes {
		add(ThemeQCodes(theme))
	}
	for _, emotion := range emotions {
		add(EmotionQCodes(emotion))
	}

	return out
}

// ObjectQCodes returns the Q-codes for a concrete noun. A noun absent from
// the object table falls through to the theme keyword tables.
func ObjectQCodes(noun string) []string {
	if codes, ok := Objects[noun]; ok {
		return codes
	}
	for _, mapping := range Themes {
		for _, kw := range mapping.Keywords {
			if kw == noun {
				return mapping.QCodes
			}
		}
	}
	return nil
}

// ThemeQCodes returns the Q-codes for a theme label, or nil for an
// unmapped theme.
func ThemeQCodes(theme string) []string {
	if mapping, ok := Themes[theme]; ok {
		return mapping.QCodes
	}
	return nil
}

// EmotionQCodes returns the subject Q-codes for an emotion label.
func EmotionQCodes(emotion string) []string {
	if mapping, ok := Emotions[emotion]; ok {
		return mapping.QCodes
	}
	return nil
}

// EmotionGenres returns the genre Q-codes associated with a set of
// emotions, deduplicated.
func EmotionGenres(emotions []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, emotion := range emotions {
		mapping, ok := Emotions[emotion]
		if !ok {
			continue
		}
		for _, g := range mapping.Genres {
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	return out
}
