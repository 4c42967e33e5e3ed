package discovery

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vinolab/git-indexer/pkg/gitutil"
)

// minListEntryLen filters out list-file lines too short to be a clone URL
// or path.
const minListEntryLen = 6

// LocalRepositories walks root and returns every directory that holds a
// .git entry. Matched directories are not descended into, nested working
// trees below a repository are ignored.
func LocalRepositories(root string) ([]string, error) {
	var repos []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if _, statErr := os.Stat(filepath.Join(path, ".git")); statErr == nil {
			repos = append(repos, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return repos, nil
}

// ListFile reads clone URLs from a newline-separated file. Blank lines,
// comment lines and lines too short to name a repository are skipped.
func ListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository list %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || len(line) <= minListEntryLen {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read repository list %s: %w", path, err)
	}

	return urls, nil
}

// Filter keeps the URLs matching any of the comma-separated glob patterns.
// An empty pattern list keeps everything.
func Filter(urls []string, patterns string) []string {
	if strings.TrimSpace(patterns) == "" {
		return urls
	}

	var kept []string
	for _, url := range urls {
		if gitutil.MatchAny(url, patterns) {
			kept = append(kept, url)
		}
	}
	return kept
}
