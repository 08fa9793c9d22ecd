package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCourseHandicap(t *testing.T) {
	tests := []struct {
		name  string
		index float64
		slope int
		want  int
	}{
		{name: "neutral slope is identity", index: 10.0, slope: 113, want: 10},
		{name: "steep slope adds strokes", index: 14.2, slope: 135, want: 17},
		{name: "gentle slope removes strokes", index: 14.2, slope: 100, want: 13},
		{name: "missing index is scratch", index: 0, slope: 140, want: 0},
		{name: "plus handicap stays negative", index: -2.0, slope: 113, want: -2},
		{name: "rounds half up", index: 8.5, slope: 113, want: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CourseHandicap(tt.index, tt.slope))
		})
	}
}

func TestAdjustedHandicap(t *testing.T) {
	cap10 := 10
	tests := []struct {
		name   string
		course int
		cfg    HandicapConfig
		want   int
	}{
		{name: "full handicap", course: 14, cfg: HandicapConfig{Percentage: 100}, want: 14},
		{name: "80 percent rounds up", course: 14, cfg: HandicapConfig{Percentage: 80}, want: 12}, // ceil(11.2)
		{name: "cap applies", course: 20, cfg: HandicapConfig{Percentage: 100, MaxHandicap: &cap10}, want: 10},
		{name: "zero percentage treated as full", course: 9, cfg: HandicapConfig{}, want: 9},
		{
			name:   "unified formula forces full and ignores cap",
			course: 20,
			cfg:    HandicapConfig{Percentage: 80, MaxHandicap: &cap10, UnifiedFormula: true},
			want:   20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AdjustedHandicap(tt.course, tt.cfg))
		})
	}
}

func TestUnifiedCourseHandicap(t *testing.T) {
	tests := []struct {
		name   string
		index  float64
		slope  int
		rating float64
		par    int
		max    int
		want   int
	}{
		// (12.0×130/113 + (71.5−72)) × 0.8 = (13.805 − 0.5) × 0.8 = 10.64 → 11
		{name: "typical tee", index: 12.0, slope: 130, rating: 71.5, par: 72, max: 36, want: 11},
		{name: "cap applies", index: 30.0, slope: 140, rating: 74.0, par: 72, max: 18, want: 18},
		{name: "scratch floor", index: 0, slope: 113, rating: 69.0, par: 72, max: 36, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, UnifiedCourseHandicap(tt.index, tt.slope, tt.rating, tt.par, tt.max))
		})
	}
}

func TestTeamHandicap(t *testing.T) {
	cfg := HandicapConfig{TeamCombos: DefaultTeamCombos()}
	tests := []struct {
		name      string
		format    Format
		handicaps []int
		want      int
	}{
		// foursomes 60/40: 8×0.6 + 14×0.4 = 4.8 + 5.6 = 10.4 → 10
		{name: "foursomes pair", format: FormatFoursomes, handicaps: []int{14, 8}, want: 10},
		// scramble 35/15: 6×0.35 + 18×0.15 = 2.1 + 2.7 = 4.8 → 5
		{name: "scramble pair", format: FormatScramble, handicaps: []int{6, 18}, want: 5},
		// single player uses only the low percentage
		{name: "solo foursomes", format: FormatFoursomes, handicaps: []int{10}, want: 6},
		{name: "identical pair", format: FormatFoursomes, handicaps: []int{10, 10}, want: 10},
		{name: "empty side", format: FormatFoursomes, handicaps: nil, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TeamHandicap(tt.format, tt.handicaps, cfg))
		})
	}
}

func TestNormalizeOffTheLow(t *testing.T) {
	require.Equal(t, []int{0, 6, 2}, NormalizeOffTheLow([]int{8, 14, 10}))
	require.Equal(t, []int{0, 0}, NormalizeOffTheLow([]int{5, 5}))
	require.Nil(t, NormalizeOffTheLow(nil))

	// Inputs are never mutated.
	in := []int{8, 14}
	NormalizeOffTheLow(in)
	require.Equal(t, []int{8, 14}, in)
}

func TestPlayingHandicaps(t *testing.T) {
	cfg := HandicapConfig{Percentage: 100, OffTheLow: true, TeamCombos: DefaultTeamCombos()}

	t.Run("singles off the low", func(t *testing.T) {
		got := PlayingHandicaps(FormatSingles, []SideHandicapInput{
			{SideID: "a", PlayerHandicaps: []int{12}},
			{SideID: "b", PlayerHandicaps: []int{7}},
		}, cfg)
		require.Equal(t, map[string]int{"a": 5, "b": 0}, got)
	})

	t.Run("foursomes combines then normalizes", func(t *testing.T) {
		got := PlayingHandicaps(FormatFoursomes, []SideHandicapInput{
			{SideID: "s1", PlayerHandicaps: []int{14, 8}}, // team 10
			{SideID: "s2", PlayerHandicaps: []int{6, 6}},  // team 6
		}, cfg)
		require.Equal(t, map[string]int{"s1": 4, "s2": 0}, got)
	})

	t.Run("never negative", func(t *testing.T) {
		got := PlayingHandicaps(FormatSingles, []SideHandicapInput{
			{SideID: "a", PlayerHandicaps: []int{-2}},
			{SideID: "b", PlayerHandicaps: []int{4}},
		}, HandicapConfig{Percentage: 100})
		require.GreaterOrEqual(t, got["a"], 0)
	})
}
