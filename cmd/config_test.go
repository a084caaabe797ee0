package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobmatch-sim/jobmatch-sim/sim"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_NoPathReturnsDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	// GIVEN a file that only sets two fields
	path := writeConfig(t, "num_seekers: 80\ntreatment_prob: 0.3\n")

	// WHEN it is loaded
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	// THEN those fields change and the rest keep their defaults
	assert.Equal(t, 80, cfg.NumSeekers)
	assert.Equal(t, 0.3, cfg.TreatmentProb)
	assert.Equal(t, 50, cfg.NumJobs)
	assert.Equal(t, 100, cfg.NumRuns)
	assert.Equal(t, sim.DefaultSkills, cfg.Skills)
}

func TestLoadConfig_SkillsReplaceDefaults(t *testing.T) {
	path := writeConfig(t, "skills: [Go, Rust]\n")
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Rust"}, cfg.Skills)
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg)
}

func TestLoadConfig_UnknownFieldRejected(t *testing.T) {
	// Typos must fail loudly rather than silently keep a default.
	_, err := loadConfig(writeConfig(t, "num_seeker: 10\n"))
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyFlagOverrides_OnlyChangedFlags(t *testing.T) {
	flags := runCmd.Flags()
	t.Cleanup(func() {
		for _, name := range []string{"seekers", "runs"} {
			f := flags.Lookup(name)
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		}
	})

	// GIVEN a config loaded from file and two explicit flags
	cfg := sim.DefaultConfig()
	cfg.NumJobs = 7
	cfg.NumSeekers = 70
	require.NoError(t, flags.Set("seekers", "10"))
	require.NoError(t, flags.Set("runs", "3"))

	// WHEN overrides are applied
	applyFlagOverrides(runCmd, &cfg)

	// THEN only the changed flags win
	assert.Equal(t, 10, cfg.NumSeekers)
	assert.Equal(t, 3, cfg.NumRuns)
	assert.Equal(t, 7, cfg.NumJobs)
	assert.Equal(t, 0.5, cfg.TreatmentProb)
}
