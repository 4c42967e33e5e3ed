package gitutil

import (
	"regexp"
)

var (
	credentialRe = regexp.MustCompile(`(://)[^/]*@`)
	hostRe       = regexp.MustCompile(`https?://[^/]+`)
	sshHostRe    = regexp.MustCompile(`git@.*:`)
	gitSuffixRe  = regexp.MustCompile(`\.git$`)
)

// RedactHTTPURL strips any user:pass@ or token@ segment embedded in an
// http(s) clone URL so credentials never reach storage or logs.
func RedactHTTPURL(url string) string {
	return credentialRe.ReplaceAllString(url, "$1")
}

// DisplayURL shortens a clone URL for log lines: the host portion and a
// trailing .git are removed and long paths are elided in the middle.
func DisplayURL(cloneURL string) string {
	url := hostRe.ReplaceAllString(cloneURL, "")
	url = sshHostRe.ReplaceAllString(url, "")
	url = shorten(url, 64)
	return gitSuffixRe.ReplaceAllString(url, "")
}

func shorten(path string, maxLength int) string {
	if len(path) > maxLength {
		return path[:3] + "..." + path[len(path)-(maxLength-6):]
	}
	return path
}
