package gitutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBranches(t *testing.T) {
	branches := []string{
		"origin/feature/presigned-url-generator",
		"origin/feature/debug-error",
		"origin/HEAD -> origin/master",
		"origin/master",
		"release/1.0",
		"bugfix/PROJ-1233",
		"some_random_long_branch_name",
	}
	assert.Equal(t, "bugfix,feature,master,release,some_rando", NormalizeBranches(branches))
}

func TestNormalizeBranchesEmpty(t *testing.T) {
	assert.Equal(t, "", NormalizeBranches(nil))
	assert.Equal(t, "", NormalizeBranches([]string{"origin/HEAD -> origin/main"}))
}

func TestNormalizeBranchesCapped(t *testing.T) {
	var branches []string
	for i := 0; i < 500; i++ {
		branches = append(branches, fmt.Sprintf("branch%04d", i))
	}
	out := NormalizeBranches(branches)
	assert.LessOrEqual(t, len(out), 1024)
}
