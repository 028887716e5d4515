package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	prevVersion, prevCommit, prevDate := Version, CommitHash, BuildDate
	t.Cleanup(func() { Version, CommitHash, BuildDate = prevVersion, prevCommit, prevDate })

	Version, CommitHash, BuildDate = "v0.3.0", "abc123", "2026-01-02"
	assert.Equal(t, "v0.3.0 (commit abc123, built 2026-01-02)", String())
}
