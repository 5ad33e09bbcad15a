package sim

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/banshee-data/trajectory.report/internal/fsutil"
	"github.com/banshee-data/trajectory.report/internal/timeutil"
)

func TestExportArtifacts(t *testing.T) {
	s, err := New(testGroups(), 10)
	require.NoError(t, err)

	objects := s.GenerateObjects(rand.New(rand.NewSource(8)))
	samples, err := s.GenerateTrajectories(objects)
	require.NoError(t, err)

	mfs := fsutil.NewMemoryFileSystem()
	res, err := s.Export(mfs, "results", "run1", objects, samples)
	require.NoError(t, err)

	require.Equal(t, "results/run1_input_groups.csv", res.InputGroups)
	require.Equal(t, "results/run1_objects.csv", res.Objects)
	require.Equal(t, "results/run1_trajectories.csv", res.Trajectories)
	require.Equal(t, "results/run1_summary.txt", res.Summary)

	objData, err := mfs.ReadFile(res.Objects)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(objData)), "\n")
	require.Len(t, lines, 1+len(objects))
	require.Equal(t, strings.Join(ObjectColumns, ","), lines[0])

	trajData, err := mfs.ReadFile(res.Trajectories)
	require.NoError(t, err)
	trajLines := strings.Split(strings.TrimSpace(string(trajData)), "\n")
	require.Equal(t, strings.Join(TrajectoryColumns, ","), trajLines[0])
	require.Len(t, trajLines, 1+len(samples))

	summary, err := mfs.ReadFile(res.Summary)
	require.NoError(t, err)
	require.Contains(t, string(summary), "total_objects: 5")
}

func TestExportDefaultPrefixIsTimestamped(t *testing.T) {
	s, err := New(testGroups(), 10)
	require.NoError(t, err)
	s.Clock = timeutil.NewMockClock(time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC))
	objects := s.GenerateObjects(rand.New(rand.NewSource(8)))

	mfs := fsutil.NewMemoryFileSystem()
	res, err := s.Export(mfs, "out", "", objects, nil)
	require.NoError(t, err)
	require.Equal(t, "out/20250314_0926_objects.csv", res.Objects)
}

func TestExportedTrajectoriesRoundTrip(t *testing.T) {
	s, err := New(testGroups(), 10)
	require.NoError(t, err)

	objects := s.GenerateObjects(rand.New(rand.NewSource(8)))
	samples, err := s.GenerateTrajectories(objects)
	require.NoError(t, err)

	mfs := fsutil.NewMemoryFileSystem()
	res, err := s.Export(mfs, "results", "rt", objects, samples)
	require.NoError(t, err)

	data, err := mfs.ReadFile(res.Trajectories)
	require.NoError(t, err)

	parsed, err := ReadTrajectories(bytes.NewReader(data))
	require.NoError(t, err)
	if diff := cmp.Diff(samples, parsed); diff != "" {
		t.Errorf("round-trip mismatch (-generated +parsed):\n%s", diff)
	}
}

func TestExportIsDeterministicForSameSeed(t *testing.T) {
	s, err := New(testGroups(), 25)
	require.NoError(t, err)

	render := func(seed uint64) string {
		objects := s.GenerateObjects(rand.New(rand.NewSource(seed)))
		samples, err := s.GenerateTrajectories(objects)
		require.NoError(t, err)

		mfs := fsutil.NewMemoryFileSystem()
		res, err := s.Export(mfs, "results", "d", objects, samples)
		require.NoError(t, err)

		obj, err := mfs.ReadFile(res.Objects)
		require.NoError(t, err)
		traj, err := mfs.ReadFile(res.Trajectories)
		require.NoError(t, err)
		return string(obj) + string(traj)
	}

	require.Equal(t, render(31), render(31), "same seed must render byte-identical tables")
	require.NotEqual(t, render(31), render(32), "different seeds must diverge")
}
