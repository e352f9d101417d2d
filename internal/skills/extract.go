package skills

// ExtractSkills returns every vocabulary entry found in the token sequence.
// Single-word entries match a token exactly. Multi-word entries match when
// their words appear as a contiguous run of tokens, in order.
func ExtractSkills(tokens []string, vocabulary *Vocabulary) SkillSet {
	found := make(SkillSet)
	if len(tokens) == 0 || vocabulary.Len() == 0 {
		return found
	}

	// Phrases are indexed by their first word so each window start only
	// checks the entries that can begin there.
	byFirst := make(map[string][]string, vocabulary.Len())
	for entry, words := range vocabulary.phrases {
		byFirst[words[0]] = append(byFirst[words[0]], entry)
	}

	for i, token := range tokens {
		for _, entry := range byFirst[token] {
			if found.Has(entry) {
				continue
			}
			if windowMatches(tokens[i:], vocabulary.words(entry)) {
				found.Add(entry)
			}
		}
	}

	return found
}

func windowMatches(tokens, words []string) bool {
	if len(words) > len(tokens) {
		return false
	}
	for k, word := range words {
		if tokens[k] != word {
			return false
		}
	}
	return true
}
