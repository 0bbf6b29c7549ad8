package ids

import "strings"

// UniquePrefixLengths maps each lowercased ID to the length of its
// shortest prefix that no other ID shares. Empty and duplicate IDs are
// skipped.
func UniquePrefixLengths(ids []string) map[string]int {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		lowered := strings.ToLower(id)
		if lowered == "" || seen[lowered] {
			continue
		}
		seen[lowered] = true
		unique = append(unique, lowered)
	}

	lengths := make(map[string]int, len(unique))
	for _, id := range unique {
		lengths[id] = shortestUniquePrefix(id, unique)
	}
	return lengths
}

func shortestUniquePrefix(id string, ids []string) int {
	for length := 1; length < len(id); length++ {
		prefix := id[:length]
		taken := false
		for _, other := range ids {
			if other != id && strings.HasPrefix(other, prefix) {
				taken = true
				break
			}
		}
		if !taken {
			return length
		}
	}
	return len(id)
}
