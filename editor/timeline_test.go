package editor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"daynight-engine/core"
	"daynight-engine/math"
	"daynight-engine/profile"
)

func names(p *profile.Profile) []string {
	out := make([]string, len(p.Keyframes))
	for i, k := range p.Keyframes {
		out[i] = k.Name
	}
	return out
}

func TestAddKeyframe(t *testing.T) {
	p := profile.Default()
	tl := NewTimeline(p)

	id, err := tl.Add()
	require.NoError(t, err)
	require.Len(t, p.Keyframes, 3)
	require.Equal(t, []string{"Day", "Night", "New keyframe"}, names(p))

	k := &p.Keyframes[p.IndexOf(id)]
	require.Equal(t, 1.0, k.Time)
	require.Equal(t, core.ColorWhite, k.LightColor)
	require.Equal(t, float32(1), k.LightIntensity)
	require.Equal(t, id, tl.Selection.Active)

	ok, err := tl.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, p.Keyframes, 2)
	require.False(t, tl.Selection.HasSelection())

	ok, err = tl.Redo()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, p.IndexOf(id))
}

func TestDragClampsAndResorts(t *testing.T) {
	p := profile.New("drag")
	a := profile.NewKeyframe("A", 6)
	b := profile.NewKeyframe("B", 18)
	p.Keyframes = []profile.Keyframe{a, b}
	tl := NewTimeline(p)

	require.NoError(t, tl.BeginDrag(a.ID))
	require.True(t, tl.Dragging())

	require.NoError(t, tl.DragTo(1.5))
	require.Equal(t, 24.0, p.Keyframes[0].Time, "clamped to the cycle end")
	require.Equal(t, []string{"A", "B"}, names(p), "no re-sort mid-drag")

	require.NoError(t, tl.DragTo(-0.2))
	require.Equal(t, 0.0, p.Keyframes[0].Time)

	require.NoError(t, tl.DragTo(0.875))
	require.Equal(t, 21.0, p.Keyframes[0].Time)
	require.NoError(t, tl.EndDrag())
	require.Equal(t, []string{"B", "A"}, names(p))
	require.NoError(t, tl.Validate())

	ok, err := tl.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"A", "B"}, names(p))
	require.Equal(t, 6.0, p.Keyframes[0].Time)

	require.ErrorIs(t, tl.DragTo(0.5), ErrNotDragging)
	require.ErrorIs(t, tl.EndDrag(), ErrNotDragging)
}

func TestDragWithoutMovementLeavesNoHistory(t *testing.T) {
	tl := NewTimeline(profile.Default())
	id := tl.Profile.Keyframes[0].ID
	require.NoError(t, tl.BeginDrag(id))
	require.NoError(t, tl.EndDrag())
	require.False(t, tl.History.CanUndo())
}

func TestCancelDragRestoresTime(t *testing.T) {
	tl := NewTimeline(profile.Default())
	day := tl.Profile.Find("Day")
	require.NoError(t, tl.BeginDrag(day.ID))
	require.NoError(t, tl.DragTo(0.5))
	tl.CancelDrag()
	require.Equal(t, 0.2, tl.Profile.Find("Day").Time)
	require.False(t, tl.Dragging())
}

func TestValidateRejectsDuplicateTimes(t *testing.T) {
	tl := NewTimeline(profile.Default())
	night := tl.Profile.Find("Night")
	require.NoError(t, tl.MoveTo(night.ID, 0.2))
	require.ErrorIs(t, tl.Validate(), profile.ErrInvalidProfile)

	require.NoError(t, tl.BeginDrag(night.ID))
	require.Error(t, tl.Validate())
}

func TestRemoveRenameAndLight(t *testing.T) {
	p := profile.Default()
	tl := NewTimeline(p)
	day := p.Find("Day").ID
	night := p.Find("Night").ID

	require.NoError(t, tl.Rename(day, "Noon"))
	require.Equal(t, "Noon", p.Keyframes[0].Name)

	warm := core.Color{R: 1, G: 0.8, B: 0.6, A: 1}
	require.NoError(t, tl.SetLight(day, warm, 2, math.Vec3{X: 45}))
	require.Equal(t, warm, p.Keyframes[0].LightColor)
	require.Error(t, tl.SetLight(day, warm, -1, math.Vec3{}))

	tl.Selection.SelectSingle(night)
	require.NoError(t, tl.Remove(night))
	require.Equal(t, []string{"Noon"}, names(p))
	require.False(t, tl.Selection.IsSelected(night))

	require.ErrorIs(t, tl.Remove(night), ErrKeyframeNotFound)
	require.ErrorIs(t, tl.Rename(uuid.New(), "x"), ErrKeyframeNotFound)

	for tl.History.CanUndo() {
		_, err := tl.Undo()
		require.NoError(t, err)
	}
	require.Equal(t, []string{"Day", "Night"}, names(p))
	require.Equal(t, core.ColorYellow, p.Keyframes[0].LightColor)
	require.Equal(t, float32(1), p.Keyframes[0].LightIntensity)
}

func TestHistoryDepth(t *testing.T) {
	h := NewHistory(2)
	p := profile.Default()
	id := p.Keyframes[0].ID
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, h.Do(NewRenameKeyframeCommand(p, id, name)))
	}
	for h.CanUndo() {
		_, err := h.Undo()
		require.NoError(t, err)
	}
	require.Equal(t, "a", p.Keyframes[0].Name, "the oldest step fell off the stack")

	ok, err := h.Undo()
	require.NoError(t, err)
	require.False(t, ok)

	require.True(t, h.CanRedo())
	h.Clear()
	require.False(t, h.CanRedo())
}

func TestSegmentsFollowResolution(t *testing.T) {
	p := profile.New("seg")
	p.Keyframes = []profile.Keyframe{profile.NewKeyframe("Day", 6), profile.NewKeyframe("Night", 18)}
	segs := NewTimeline(p).Segments()

	require.Len(t, segs, 3)
	require.Equal(t, "Night", segs[0].Keyframe.Name)
	require.Equal(t, [2]float64{0, 0.25}, [2]float64{segs[0].Start, segs[0].End})
	require.Equal(t, "Day", segs[1].Keyframe.Name)
	require.Equal(t, [2]float64{0.25, 0.75}, [2]float64{segs[1].Start, segs[1].End})
	require.Equal(t, "Night", segs[2].Keyframe.Name)
	require.Equal(t, [2]float64{0.75, 1}, [2]float64{segs[2].Start, segs[2].End})

	p.Keyframes[0].Time = 0
	require.Len(t, NewTimeline(p).Segments(), 2)
	require.Nil(t, NewTimeline(profile.New("empty")).Segments())
}

func TestPick(t *testing.T) {
	p := profile.New("pick")
	p.Keyframes = []profile.Keyframe{profile.NewKeyframe("Day", 6), profile.NewKeyframe("Night", 18)}
	tl := NewTimeline(p)

	id, ok := tl.Pick(0.26, 0.02)
	require.True(t, ok)
	require.Equal(t, p.Keyframes[0].ID, id)

	_, ok = tl.Pick(0.5, 0.02)
	require.False(t, ok)
}

func TestTimeLabel(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0:00"},
		{6.5, "6:30"},
		{0.2, "0:12"},
		{13.05, "13:03"},
		{7.999, "8:00"},
		{24, "24:00"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, TimeLabel(tt.hours), "hours %v", tt.hours)
	}
}

func TestPreviewKeyframe(t *testing.T) {
	p := profile.Default()
	require.Equal(t, "Night", PreviewKeyframe(p).Name)

	p.Keyframes[0].Time = 0
	require.Equal(t, "Day", PreviewKeyframe(p).Name)

	require.Nil(t, PreviewKeyframe(profile.New("empty")))
}

func TestSkyFieldVisible(t *testing.T) {
	for _, mode := range profile.SkyModes() {
		require.True(t, SkyFieldVisible(mode, mode))
	}
	require.False(t, SkyFieldVisible(profile.Cubemap, profile.Procedural))
}
