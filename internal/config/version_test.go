package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfo(t *testing.T) {
	version, commit, date := Version, Commit, Date
	t.Cleanup(func() { SetBuildFlags(version, commit, date) })

	SetBuildFlags("v0.4.0", "unknown", "unknown")
	assert.Equal(t, "v0.4.0", BuildInfo())

	SetBuildFlags("v0.4.0", "1a2b3c4", "2026-10-01")
	assert.Equal(t, "v0.4.0 (commit 1a2b3c4, built 2026-10-01)", BuildInfo())
}
