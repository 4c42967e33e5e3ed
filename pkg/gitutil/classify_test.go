package gitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldExcludeFromStats(t *testing.T) {
	excluded := []string{
		"vendor/x/y.go",
		"go.sum",
		"node_modules/a.js",
		"Podfile.lock",
		"Pods/Alamofire/README.md",
		"MyApp/Pods/Alamofire/Source/Request.swift",
		"App.xcodeproj/project.pbxproj",
		"ios/App.xcworkspace/contents.xcworkspacedata",
		"package-lock.json",
		"web/package-lock.json",
		"web/.next/static/chunk.js",
		".devcontainer/devcontainer.json",
		".idea/workspace.xml",
		".vscode/settings.json",
		"target/classes/App.class",
		"docs/manual.pdf",
		"assets/logo.png",
		"lib/util.jar",
		"main.swp",
		"db.bak",
		"_variables.scss",
		"styles/_mixins.scss",
		"src/_helpers.js",
	}
	for _, path := range excluded {
		assert.True(t, ShouldExcludeFromStats(path), "expected %q to be excluded", path)
	}

	included := []string{
		"src/main/App.java",
		"package.json",
		"idea/notes.md",
		"vscode/launch.md",
		"main.go",
		"README",
		"cmd/vendor.go",
		"underscore.js",
		"a_b/main.js",
	}
	for _, path := range included {
		assert.False(t, ShouldExcludeFromStats(path), "expected %q to be included", path)
	}
}

func TestFileTypeOf(t *testing.T) {
	cases := map[string]string{
		".gitignore":              "hidden",
		".github/workflows/x.yml": "hidden",
		"src/App.Java":            "java",
		"main.go":                 "go",
		"Makefile":                "generic",
		"bin/run":                 "generic",
	}
	for path, want := range cases {
		assert.Equal(t, want, FileTypeOf(path), "path %q", path)
	}
}

func TestMatchAny(t *testing.T) {
	assert.True(t, MatchAny("https://gitlab.com/ns/proj.git", "*"))
	assert.True(t, MatchAny("https://gitlab.com/ns/proj.git", "*ns*"))
	assert.True(t, MatchAny("https://gitlab.com/ns/proj.git", "*bitbucket*,*gitlab*"))
	assert.False(t, MatchAny("https://gitlab.com/ns/proj.git", "*bitbucket*"))
	assert.False(t, MatchAny("anything", ""))
}
