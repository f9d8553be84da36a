package version

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setBuildInfo mimics a release build linked with -ldflags -X
func setBuildInfo(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = origVersion, origCommit, origBuildTime
	})
	Version, GitCommit, BuildTime = version, commit, buildTime
}

func TestGet_DevelopmentBuild(t *testing.T) {
	info := Get()

	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "unknown", info.GitCommit)
	assert.Equal(t, "unknown", info.BuildTime)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestGet_ReleaseBuild(t *testing.T) {
	setBuildInfo(t, "0.3.0", "4f9c2e1", "2026-10-19T08:00:00Z")

	info := Get()

	assert.Equal(t, Info{
		Version:   "0.3.0",
		GitCommit: "4f9c2e1",
		BuildTime: "2026-10-19T08:00:00Z",
		GoVersion: runtime.Version(),
	}, info)
	assert.Equal(t, "Version: 0.3.0, GitCommit: 4f9c2e1, BuildTime: 2026-10-19T08:00:00Z, GoVersion: "+runtime.Version(), info.String())
}

func TestInfo_JSON(t *testing.T) {
	info := Info{
		Version:   "0.3.0",
		GitCommit: "4f9c2e1",
		BuildTime: "2026-10-19T08:00:00Z",
		GoVersion: "go1.25.1",
	}

	out, err := info.JSON()
	require.NoError(t, err)

	assert.Equal(t, `{
  "version": "0.3.0",
  "gitCommit": "4f9c2e1",
  "buildTime": "2026-10-19T08:00:00Z",
  "goVersion": "go1.25.1"
}`, out)

	var parsed Info
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, info, parsed)
}
