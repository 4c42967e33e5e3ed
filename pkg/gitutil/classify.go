package gitutil

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Files whose path matches any of these patterns are not counted towards
// commit change statistics: vendored dependencies, IDE metadata, mobile
// build artifacts, package-manager lock files, generated build output and
// binary blobs.
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(vendor|Pods|target|YoutuOCWrapper|vos-app-protection|vos-processor|\.idea|\.vscode)/.`),
	regexp.MustCompile(`^[a-zA-Z0-9_]*?/Pods/`),
	regexp.MustCompile(`^.*(xcodeproj|xcworkspace)/.`),
	regexp.MustCompile(`^.*\.(jar|pbxproj|lock|bk|bak|backup|class|swp|sum|pdf|png)$`),
	regexp.MustCompile(`^.*/?package-lock\.json$`),
	regexp.MustCompile(`^.*/?(\.next|node_modules|\.devcontainer)(/|$).*`),
	regexp.MustCompile(`(^|.*/)_.*\.(js|scss)$`),
}

// ShouldExcludeFromStats reports whether a committed file path should be
// ignored when calculating commit change statistics.
func ShouldExcludeFromStats(path string) bool {
	for _, re := range excludePatterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// FileTypeOf infers a coarse file-type label for a committed file path:
// "hidden" for dotfiles and files under dot directories, the lower-cased
// extension when one exists, "generic" otherwise.
func FileTypeOf(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(path)
	if ext == base {
		// dotfile such as .gitignore carries no real extension
		ext = ""
	}
	stem := strings.TrimSuffix(path, ext)
	if strings.HasPrefix(stem, ".") {
		return "hidden"
	}
	if ext != "" {
		return strings.ToLower(strings.TrimPrefix(ext, "."))
	}
	return "generic"
}

// MatchAny reports whether s matches any of the comma-separated glob
// patterns. Used to filter repository URLs on the command line.
func MatchAny(s string, patterns string) bool {
	for _, pattern := range strings.Split(patterns, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		expr := "^" + strings.ReplaceAll(strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, ".*"), `\?`, ".") + "$"
		if ok, err := regexp.MatchString(expr, s); err == nil && ok {
			return true
		}
	}
	return false
}
