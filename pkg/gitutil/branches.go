package gitutil

import (
	"sort"
	"strings"
)

// NormalizeBranches collapses a list of branch ref names into a short,
// comma-separated canonical form used to tell what kind of branches a
// commit is on (main, master, develop, feature, bugfix, ...).
//
// Entries containing "->" (HEAD pointer syntax) are dropped, a leading
// "origin/" is stripped, only the segment before the first "/" is kept and
// truncated to 10 characters. The result is deduplicated, sorted and capped
// at 1024 characters.
func NormalizeBranches(branches []string) string {
	seen := make(map[string]struct{}, len(branches))
	for _, branch := range branches {
		if strings.Contains(branch, "->") {
			continue
		}
		branch = strings.TrimPrefix(branch, "origin/")
		short := strings.SplitN(branch, "/", 2)[0]
		if len(short) > 10 {
			short = short[:10]
		}
		seen[strings.TrimSpace(short)] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	joined := strings.Join(keys, ",")
	if len(joined) > 1024 {
		joined = joined[:1024]
	}
	return joined
}
