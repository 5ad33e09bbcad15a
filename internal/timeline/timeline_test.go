package timeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/trajectory.report/internal/testutil"
)

func testEntries() []Entry {
	return []Entry{
		{GroupID: 1, GroupSize: 5, StartPercent: 0, StopPercent: 50},
		{GroupID: 2, GroupSize: 3, StartPercent: 25, StopPercent: 75},
		{GroupID: 3, GroupSize: 8, StartPercent: 80, StopPercent: 100},
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(testEntries()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantMsg string
	}{
		{
			"six groups",
			make([]Entry, 6),
			"at most 5 groups",
		},
		{
			"negative start",
			[]Entry{{GroupID: 1, GroupSize: 1, StartPercent: -5, StopPercent: 50}},
			"start_percent",
		},
		{
			"stop above 100",
			[]Entry{{GroupID: 1, GroupSize: 1, StartPercent: 0, StopPercent: 101}},
			"stop_percent must be <=",
		},
		{
			"start not before stop",
			[]Entry{{GroupID: 1, GroupSize: 1, StartPercent: 50, StopPercent: 50}},
			"greater than start_percent",
		},
		{
			"zero size",
			[]Entry{{GroupID: 1, GroupSize: 0, StartPercent: 0, StopPercent: 50}},
			"group_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.entries)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestTimePoints(t *testing.T) {
	pts := TimePoints(5)
	want := []float64{0, 25, 50, 75, 100}
	if diff := cmp.Diff(want, pts); diff != "" {
		t.Errorf("TimePoints(5) mismatch (-want +got):\n%s", diff)
	}
}

func TestActivityMatrix(t *testing.T) {
	m, times := ActivityMatrix(testEntries(), 5) // 0, 25, 50, 75, 100
	if len(times) != 5 {
		t.Fatalf("len(times) = %d", len(times))
	}

	// group 1 [0,50]: active at 0, 25, 50
	// group 2 [25,75]: active at 25, 50, 75
	// group 3 [80,100]: active at 100 only
	want := [][]float64{
		{1, 1, 1, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 1},
	}
	for i, row := range want {
		for j, v := range row {
			if got := m.At(i, j); got != v {
				t.Errorf("matrix[%d][%d] = %v, want %v", i, j, got, v)
			}
		}
	}
}

func TestActivityMatrixInclusiveEndpoints(t *testing.T) {
	entries := []Entry{{GroupID: 1, GroupSize: 1, StartPercent: 25, StopPercent: 75}}
	m, _ := ActivityMatrix(entries, 5)
	if m.At(0, 1) != 1 || m.At(0, 3) != 1 {
		t.Error("window endpoints must count as active")
	}
}

func TestOverlappingPairs(t *testing.T) {
	entries := testEntries()
	m, _ := ActivityMatrix(entries, 5)

	pairs := OverlappingPairs(entries, m)
	want := []Pair{{GroupA: 1, GroupB: 2}}
	if diff := cmp.Diff(want, pairs); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestOverlappingPairsNone(t *testing.T) {
	entries := []Entry{
		{GroupID: 1, GroupSize: 1, StartPercent: 0, StopPercent: 20},
		{GroupID: 2, GroupSize: 1, StartPercent: 30, StopPercent: 45},
	}
	m, _ := ActivityMatrix(entries, 21) // 5% steps
	if pairs := OverlappingPairs(entries, m); pairs != nil {
		t.Errorf("expected no overlaps, got %v", pairs)
	}
}

func TestActiveAt(t *testing.T) {
	entries := testEntries()

	tests := []struct {
		time float64
		want []int
	}{
		{0, []int{1}},
		{25, []int{1, 2}},
		{50, []int{1, 2}},
		{77, nil},
		{90, []int{3}},
	}
	for _, tt := range tests {
		got := ActiveAt(entries, tt.time)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ActiveAt(%v) mismatch (-want +got):\n%s", tt.time, diff)
		}
	}
}

func TestConcurrency(t *testing.T) {
	m, _ := ActivityMatrix(testEntries(), 5)
	// Per-sample totals: 1, 2, 2, 1, 1
	cs := Concurrency(m)

	if cs.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cs.MaxConcurrent)
	}
	if cs.MinConcurrent != 1 {
		t.Errorf("MinConcurrent = %d, want 1", cs.MinConcurrent)
	}
	if cs.AvgConcurrent != 1.4 {
		t.Errorf("AvgConcurrent = %v, want 1.4", cs.AvgConcurrent)
	}
	if cs.TimesWithZero != 0 {
		t.Errorf("TimesWithZero = %d, want 0", cs.TimesWithZero)
	}
	if cs.TimesWithMax != 2 {
		t.Errorf("TimesWithMax = %d, want 2", cs.TimesWithMax)
	}
}

func TestSummarise(t *testing.T) {
	s := Summarise(testEntries())
	if s.NumGroups != 3 || s.TotalParticipants != 16 {
		t.Errorf("summary = %+v", s)
	}
	if s.EarliestStart != 0 || s.LatestStop != 100 {
		t.Errorf("window = [%v, %v]", s.EarliestStart, s.LatestStop)
	}
	if s.MinGroupSize != 3 || s.MaxGroupSize != 8 {
		t.Errorf("size range = [%d, %d]", s.MinGroupSize, s.MaxGroupSize)
	}
	if got := s.AvgGroupSize; got < 5.33 || got > 5.34 {
		t.Errorf("AvgGroupSize = %v", got)
	}
}

func TestFormatTable(t *testing.T) {
	entries := testEntries()
	m, times := ActivityMatrix(entries, 3)
	tableStr := FormatTable(entries, m, times)

	lines := strings.Split(tableStr, "\n")
	if !strings.HasPrefix(lines[0], "Time%  |") {
		t.Errorf("header = %q", lines[0])
	}
	if got := strings.Count(lines[0], "Group"); got != len(entries) {
		t.Errorf("header has %d group columns, want %d: %q", got, len(entries), lines[0])
	}
	// Header + separator + one row per time point
	if len(lines) != 2+len(times) {
		t.Errorf("table has %d lines, want %d", len(lines), 2+len(times))
	}
	if !strings.Contains(lines[2], "0.0") {
		t.Errorf("first data row = %q", lines[2])
	}
}

func TestAnalyse(t *testing.T) {
	rep, err := Analyse(testEntries(), 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Summary.NumGroups != 3 {
		t.Errorf("NumGroups = %d", rep.Summary.NumGroups)
	}
	if len(rep.TimePoints) != 20 {
		t.Errorf("len(TimePoints) = %d", len(rep.TimePoints))
	}
	if rep.Table == "" {
		t.Error("empty table")
	}
	if len(rep.Overlaps) != 1 {
		t.Errorf("Overlaps = %v", rep.Overlaps)
	}
}

func TestAnalyseEmptySchedule(t *testing.T) {
	// A header-only schedule CSV parses to zero entries and violates no
	// validation rule; the report must come back empty rather than panic.
	rep, err := Analyse(nil, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Matrix != nil {
		t.Errorf("Matrix = %v, want nil", rep.Matrix)
	}
	if len(rep.TimePoints) != 20 {
		t.Errorf("len(TimePoints) = %d, want 20", len(rep.TimePoints))
	}
	if rep.Summary.NumGroups != 0 || rep.Summary.TotalParticipants != 0 {
		t.Errorf("summary = %+v, want zero", rep.Summary)
	}
	if rep.Overlaps != nil {
		t.Errorf("Overlaps = %v, want none", rep.Overlaps)
	}
	if rep.Stats != (ConcurrentStats{}) {
		t.Errorf("Stats = %+v, want zero", rep.Stats)
	}
	if !strings.HasPrefix(rep.Table, "Time%") {
		t.Errorf("table header missing: %q", rep.Table)
	}
}

func TestActivityMatrixEmptySchedule(t *testing.T) {
	m, times := ActivityMatrix(nil, 5)
	if m != nil {
		t.Errorf("matrix = %v, want nil", m)
	}
	if len(times) != 5 {
		t.Errorf("len(times) = %d, want 5", len(times))
	}
	if pairs := OverlappingPairs(nil, m); pairs != nil {
		t.Errorf("pairs = %v, want none", pairs)
	}
	if cs := Concurrency(m); cs != (ConcurrentStats{}) {
		t.Errorf("stats = %+v, want zero", cs)
	}
}

func TestRenderHTMLEmptySchedule(t *testing.T) {
	rep, err := Analyse(nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := rep.RenderHTML(nil, &buf); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(buf.String(), "Total") {
		t.Error("total series missing from chart")
	}
}

func TestAnalyseRejectsInvalid(t *testing.T) {
	entries := []Entry{{GroupID: 1, GroupSize: 0, StartPercent: 0, StopPercent: 50}}
	if _, err := Analyse(entries, 20); err == nil {
		t.Error("expected validation error")
	}

	if _, err := Analyse(testEntries(), 1); err == nil {
		t.Error("expected error for single time point")
	}
}

func TestRead(t *testing.T) {
	csvData := "group_id,group_size,start_percent,stop_percent\n1,5,0,50\n2,3,25,75\n"
	entries, err := Read(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Entry{
		{GroupID: 1, GroupSize: 5, StartPercent: 0, StopPercent: 50},
		{GroupID: 2, GroupSize: 3, StartPercent: 25, StopPercent: 75},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestReadMissingColumn(t *testing.T) {
	if _, err := Read(strings.NewReader("group_id,group_size\n1,5\n")); err == nil {
		t.Error("expected error for missing columns")
	}
}

func TestLoadCSV(t *testing.T) {
	path := testutil.TempCSV(t, "schedule.csv", "group_id,group_size,start_percent,stop_percent\n1,5,0,50\n")
	entries, err := LoadCSV(path)
	testutil.AssertNoError(t, err)
	if len(entries) != 1 || entries[0].GroupID != 1 {
		t.Errorf("entries = %+v", entries)
	}
}
