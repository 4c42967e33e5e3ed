package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeType(t *testing.T) {
	assert.Equal(t, "ADD", changeType("", "main.go"))
	assert.Equal(t, "DELETE", changeType("main.go", ""))
	assert.Equal(t, "MODIFY", changeType("main.go", "main.go"))
	assert.Equal(t, "RENAME", changeType("old/main.go", "new/main.go"))
	assert.Equal(t, "UNKNOWN", changeType("", ""))
}

func TestFileChangePath(t *testing.T) {
	assert.Equal(t, "new.go", FileChange{OldPath: "old.go", NewPath: "new.go"}.Path())
	assert.Equal(t, "old.go", FileChange{OldPath: "old.go"}.Path())
}
