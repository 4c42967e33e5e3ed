package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepositoryInference(t *testing.T) {
	cases := []struct {
		url      string
		wantType string
		wantName string
	}{
		{"https://gitlab.com/ns/proj.git", RepoTypeGitLab, "proj"},
		{"https://github.com/octocat/hello-world.git", RepoTypeGitHub, "hello-world"},
		{"https://bitbucket.org/team/tool.git", RepoTypeBitbucket, "tool"},
		{"https://code.example.com/some/repo.git", RepoTypeOther, "repo"},
		{"/home/user/repos/local-proj", RepoTypeLocal, "local-proj"},
	}

	for _, tc := range cases {
		repo, err := NewRepository(tc.url, "")
		require.NoError(t, err, tc.url)
		assert.Equal(t, tc.wantType, repo.RepoType, tc.url)
		assert.Equal(t, tc.wantName, repo.RepoName, tc.url)
		assert.True(t, repo.IsActive)
	}
}

func TestNewRepositoryExplicitType(t *testing.T) {
	repo, err := NewRepository("https://gitlab.internal/ns/proj.git", RepoTypeGitLabPrivate)
	require.NoError(t, err)
	assert.Equal(t, RepoTypeGitLabPrivate, repo.RepoType)
}

func TestNewRepositoryRejectsSSH(t *testing.T) {
	_, err := NewRepository("git@gitlab.com:ns/proj.git", "")
	assert.Error(t, err)

	_, err = NewRepository("ssh://git@gitlab.com/ns/proj.git", "")
	assert.Error(t, err)
}

func TestNewRepositoryRejectsUnknownType(t *testing.T) {
	_, err := NewRepository("https://gitlab.com/ns/proj.git", "subversion")
	assert.Error(t, err)
}

func TestRepositoryURLs(t *testing.T) {
	repo, err := NewRepository("https://gitlab.com/ns/proj.git", "")
	require.NoError(t, err)
	assert.Equal(t, "https://gitlab.com/ns/proj", repo.BrowseURL())
	assert.Equal(t, "https://gitlab.com/ns/proj/-/commit", repo.URLForCommit())

	gh, err := NewRepository("https://github.com/o/r.git", "")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/o/r/commit", gh.URLForCommit())

	local, err := NewRepository("/srv/repos/x", "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/gitweb/", local.BrowseURL())
	assert.Equal(t, "", local.URLForCommit())
}

func TestTruncateMessage(t *testing.T) {
	short := "fix: something"
	assert.Equal(t, short, TruncateMessage(short))

	long := make([]byte, MessageMaxLen+100)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, TruncateMessage(string(long)), MessageMaxLen)
}
