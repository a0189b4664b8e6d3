// Package editor is the headless model behind the keyframe timeline: a bar
// spanning one cycle with a draggable handle per keyframe. Every edit goes
// through History so it can be undone.
package editor

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/google/uuid"

	"daynight-engine/core"
	"daynight-engine/math"
	"daynight-engine/profile"
)

const (
	// DefaultHistoryDepth is the undo depth of a new timeline.
	DefaultHistoryDepth = 100

	newKeyframeName = "New keyframe"
	newKeyframeTime = 1
)

var ErrNotDragging = errors.New("no keyframe is being dragged")

// Timeline edits one profile.
type Timeline struct {
	Profile   *profile.Profile
	History   *History
	Selection *Selection

	dragging bool
	dragID   uuid.UUID
	dragFrom float64
}

func NewTimeline(p *profile.Profile) *Timeline {
	return &Timeline{
		Profile:   p,
		History:   NewHistory(DefaultHistoryDepth),
		Selection: NewSelection(),
	}
}

func (tl *Timeline) cycleHours() float64 {
	if tl.Profile.CycleHours == 0 {
		return profile.DefaultCycleHours
	}
	return float64(tl.Profile.CycleHours)
}

// clampTime keeps t inside [0, CycleHours].
func (tl *Timeline) clampTime(t float64) float64 {
	if stdmath.IsNaN(t) || t < 0 {
		return 0
	}
	return stdmath.Min(t, tl.cycleHours())
}

// Add inserts a white, unit intensity keyframe at hour 1 and selects it.
func (tl *Timeline) Add() (uuid.UUID, error) {
	k := profile.NewKeyframe(newKeyframeName, tl.clampTime(newKeyframeTime))
	if err := tl.History.Do(NewAddKeyframeCommand(tl.Profile, k)); err != nil {
		return uuid.Nil, err
	}
	tl.Selection.SelectSingle(k.ID)
	return k.ID, nil
}

func (tl *Timeline) Remove(id uuid.UUID) error {
	if err := tl.History.Do(NewRemoveKeyframeCommand(tl.Profile, id)); err != nil {
		return err
	}
	tl.Selection.Prune(tl.Profile)
	return nil
}

func (tl *Timeline) Rename(id uuid.UUID, name string) error {
	return tl.History.Do(NewRenameKeyframeCommand(tl.Profile, id, name))
}

func (tl *Timeline) SetLight(id uuid.UUID, color core.Color, intensity float32, rotation math.Vec3) error {
	return tl.History.Do(NewLightCommand(tl.Profile, id, color, intensity, rotation))
}

// MoveTo sets a keyframe's time, clamped to the cycle, and re-sorts.
func (tl *Timeline) MoveTo(id uuid.UUID, hours float64) error {
	k, err := lookup(tl.Profile, id)
	if err != nil {
		return err
	}
	return tl.History.Do(NewMoveKeyframeCommand(tl.Profile, id, k.Time, tl.clampTime(hours)))
}

// BeginDrag grabs a keyframe's handle.
func (tl *Timeline) BeginDrag(id uuid.UUID) error {
	k, err := lookup(tl.Profile, id)
	if err != nil {
		return err
	}
	tl.dragging, tl.dragID, tl.dragFrom = true, id, k.Time
	tl.Selection.SelectSingle(id)
	return nil
}

func (tl *Timeline) Dragging() bool { return tl.dragging }

// DragTo moves the grabbed keyframe to fraction of the bar's width. The
// keyframes are not re-sorted until the drag ends.
func (tl *Timeline) DragTo(fraction float64) error {
	if !tl.dragging {
		return ErrNotDragging
	}
	k, err := lookup(tl.Profile, tl.dragID)
	if err != nil {
		tl.dragging = false
		return err
	}
	k.Time = tl.clampTime(fraction * tl.cycleHours())
	return nil
}

// EndDrag releases the handle, re-sorts the keyframes and records the move
// as a single undo step.
func (tl *Timeline) EndDrag() error {
	if !tl.dragging {
		return ErrNotDragging
	}
	tl.dragging = false

	k, err := lookup(tl.Profile, tl.dragID)
	if err != nil {
		return err
	}
	if k.Time == tl.dragFrom {
		tl.Profile.Sort()
		return nil
	}
	return tl.History.Do(NewMoveKeyframeCommand(tl.Profile, tl.dragID, tl.dragFrom, k.Time))
}

// CancelDrag puts the grabbed keyframe back where the drag started.
func (tl *Timeline) CancelDrag() {
	if !tl.dragging {
		return
	}
	tl.dragging = false
	if k, err := lookup(tl.Profile, tl.dragID); err == nil {
		k.Time = tl.dragFrom
	}
}

func (tl *Timeline) Undo() (bool, error) {
	ok, err := tl.History.Undo()
	tl.Selection.Prune(tl.Profile)
	return ok, err
}

func (tl *Timeline) Redo() (bool, error) {
	ok, err := tl.History.Redo()
	tl.Selection.Prune(tl.Profile)
	return ok, err
}

// Pick returns the keyframe whose handle is nearest to fraction, if it lies
// within radius (also a fraction of the bar).
func (tl *Timeline) Pick(fraction, radius float64) (uuid.UUID, bool) {
	best, bestDist := uuid.Nil, stdmath.Inf(1)
	for i := range tl.Profile.Keyframes {
		k := &tl.Profile.Keyframes[i]
		d := stdmath.Abs(k.NormalizedTime(tl.Profile.CycleHours) - fraction)
		if d <= radius && d < bestDist {
			best, bestDist = k.ID, d
		}
	}
	return best, best != uuid.Nil
}

// Segment is a coloured span of the bar owned by one keyframe. Start and End
// are fractions of the bar.
type Segment struct {
	Keyframe *profile.Keyframe
	Start    float64
	End      float64
}

// Segments splits the bar the way keyframes are resolved at run time: each
// keyframe owns the span up to the next one, and the last keyframe also
// owns the span before the first.
func (tl *Timeline) Segments() []Segment {
	keys := tl.Profile.Keyframes
	if len(keys) == 0 {
		return nil
	}
	cycle := tl.Profile.CycleHours
	segs := make([]Segment, 0, len(keys)+1)

	last := &keys[len(keys)-1]
	if first := keys[0].NormalizedTime(cycle); first > 0 {
		segs = append(segs, Segment{Keyframe: last, Start: 0, End: first})
	}
	for i := range keys {
		end := 1.0
		if i+1 < len(keys) {
			end = keys[i+1].NormalizedTime(cycle)
		}
		segs = append(segs, Segment{Keyframe: &keys[i], Start: keys[i].NormalizedTime(cycle), End: end})
	}
	return segs
}

// Validate checks the edited profile is fit to save.
func (tl *Timeline) Validate() error {
	if tl.dragging {
		return fmt.Errorf("cannot validate mid-drag")
	}
	return tl.Profile.Validate()
}

// TimeLabel renders hours as "H:MM" with the minutes rounded.
func TimeLabel(hours float64) string {
	h := stdmath.Floor(hours)
	m := stdmath.Round((hours - h) * 60)
	if m >= 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%d:%02d", int(h), int(m))
}

// PreviewKeyframe is the keyframe the scene shows while editing, before the
// cycle runs: the first one if it sits at midnight, otherwise the last.
func PreviewKeyframe(p *profile.Profile) *profile.Keyframe {
	if len(p.Keyframes) == 0 {
		return nil
	}
	if p.Keyframes[0].Time == 0 {
		return &p.Keyframes[0]
	}
	return &p.Keyframes[len(p.Keyframes)-1]
}

// SkyFieldVisible reports whether the inspector shows a keyframe's sky
// target for field; only the profile's active mode is editable.
func SkyFieldVisible(field, active profile.SkyMode) bool {
	return field == active
}
