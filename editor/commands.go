package editor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"daynight-engine/core"
	"daynight-engine/math"
	"daynight-engine/profile"
)

// Command represents an undoable timeline edit
type Command interface {
	Execute() error
	Undo() error
	Description() string
}

// History manages undo/redo stacks
type History struct {
	undoStack []Command
	redoStack []Command
	maxDepth  int
}

// NewHistory creates a new history with the given max undo depth
func NewHistory(maxDepth int) *History {
	return &History{
		undoStack: make([]Command, 0, maxDepth),
		redoStack: make([]Command, 0, maxDepth),
		maxDepth:  maxDepth,
	}
}

// Do executes a command and pushes it to the undo stack. A command that
// fails is not recorded.
func (h *History) Do(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Description(), err)
	}
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	h.redoStack = h.redoStack[:0]
	return nil
}

// Undo reverts the last action. It reports false when there was nothing to
// undo.
func (h *History) Undo() (bool, error) {
	if len(h.undoStack) == 0 {
		return false, nil
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	if err := cmd.Undo(); err != nil {
		return false, fmt.Errorf("undo %s: %w", cmd.Description(), err)
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, cmd)
	return true, nil
}

// Redo reapplies the last undone action
func (h *History) Redo() (bool, error) {
	if len(h.redoStack) == 0 {
		return false, nil
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	if err := cmd.Execute(); err != nil {
		return false, fmt.Errorf("redo %s: %w", cmd.Description(), err)
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, cmd)
	return true, nil
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Clear wipes all undo/redo history
func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}

// ErrKeyframeNotFound is returned when a command's keyframe is no longer in
// the profile.
var ErrKeyframeNotFound = errors.New("keyframe not found")

// --- Concrete Commands ---
//
// Commands address keyframes by ID because the slice is re-sorted after
// every time change.

func lookup(p *profile.Profile, id uuid.UUID) (*profile.Keyframe, error) {
	i := p.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrKeyframeNotFound, id)
	}
	return &p.Keyframes[i], nil
}

// AddKeyframeCommand appends a keyframe and re-sorts
type AddKeyframeCommand struct {
	Profile  *profile.Profile
	Keyframe profile.Keyframe
}

func NewAddKeyframeCommand(p *profile.Profile, k profile.Keyframe) *AddKeyframeCommand {
	return &AddKeyframeCommand{Profile: p, Keyframe: k}
}

func (c *AddKeyframeCommand) Execute() error {
	if c.Profile.IndexOf(c.Keyframe.ID) >= 0 {
		return fmt.Errorf("keyframe %s already present", c.Keyframe.ID)
	}
	c.Profile.Keyframes = append(c.Profile.Keyframes, c.Keyframe)
	c.Profile.Sort()
	return nil
}

func (c *AddKeyframeCommand) Undo() error {
	i := c.Profile.IndexOf(c.Keyframe.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrKeyframeNotFound, c.Keyframe.ID)
	}
	c.Keyframe = c.Profile.Keyframes[i]
	c.Profile.Keyframes = append(c.Profile.Keyframes[:i], c.Profile.Keyframes[i+1:]...)
	return nil
}

func (c *AddKeyframeCommand) Description() string { return "Add " + c.Keyframe.Name }

// RemoveKeyframeCommand records deleting a keyframe
type RemoveKeyframeCommand struct {
	Profile *profile.Profile
	ID      uuid.UUID

	removed profile.Keyframe
}

func NewRemoveKeyframeCommand(p *profile.Profile, id uuid.UUID) *RemoveKeyframeCommand {
	return &RemoveKeyframeCommand{Profile: p, ID: id}
}

func (c *RemoveKeyframeCommand) Execute() error {
	i := c.Profile.IndexOf(c.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrKeyframeNotFound, c.ID)
	}
	c.removed = c.Profile.Keyframes[i]
	c.Profile.Keyframes = append(c.Profile.Keyframes[:i], c.Profile.Keyframes[i+1:]...)
	return nil
}

func (c *RemoveKeyframeCommand) Undo() error {
	c.Profile.Keyframes = append(c.Profile.Keyframes, c.removed)
	c.Profile.Sort()
	return nil
}

func (c *RemoveKeyframeCommand) Description() string { return "Remove " + c.removed.Name }

// MoveKeyframeCommand records a time change. The profile is re-sorted both
// ways.
type MoveKeyframeCommand struct {
	Profile *profile.Profile
	ID      uuid.UUID
	OldTime float64
	NewTime float64
}

func NewMoveKeyframeCommand(p *profile.Profile, id uuid.UUID, oldTime, newTime float64) *MoveKeyframeCommand {
	return &MoveKeyframeCommand{Profile: p, ID: id, OldTime: oldTime, NewTime: newTime}
}

func (c *MoveKeyframeCommand) Execute() error { return c.setTime(c.NewTime) }
func (c *MoveKeyframeCommand) Undo() error    { return c.setTime(c.OldTime) }

func (c *MoveKeyframeCommand) setTime(t float64) error {
	k, err := lookup(c.Profile, c.ID)
	if err != nil {
		return err
	}
	k.Time = t
	c.Profile.Sort()
	return nil
}

func (c *MoveKeyframeCommand) Description() string {
	return fmt.Sprintf("Move keyframe to %s", TimeLabel(c.NewTime))
}

// RenameKeyframeCommand records a name change
type RenameKeyframeCommand struct {
	Profile *profile.Profile
	ID      uuid.UUID
	OldName string
	NewName string
}

func NewRenameKeyframeCommand(p *profile.Profile, id uuid.UUID, newName string) *RenameKeyframeCommand {
	c := &RenameKeyframeCommand{Profile: p, ID: id, NewName: newName}
	if k, err := lookup(p, id); err == nil {
		c.OldName = k.Name
	}
	return c
}

func (c *RenameKeyframeCommand) Execute() error { return c.rename(c.NewName) }
func (c *RenameKeyframeCommand) Undo() error    { return c.rename(c.OldName) }

func (c *RenameKeyframeCommand) rename(name string) error {
	k, err := lookup(c.Profile, c.ID)
	if err != nil {
		return err
	}
	k.Name = name
	return nil
}

func (c *RenameKeyframeCommand) Description() string { return "Rename " + c.OldName }

// LightCommand records a change to a keyframe's light target
type LightCommand struct {
	Profile *profile.Profile
	ID      uuid.UUID

	OldColor, NewColor         core.Color
	OldIntensity, NewIntensity float32
	OldRotation, NewRotation   math.Vec3
}

func NewLightCommand(p *profile.Profile, id uuid.UUID, color core.Color, intensity float32, rotation math.Vec3) *LightCommand {
	c := &LightCommand{Profile: p, ID: id, NewColor: color, NewIntensity: intensity, NewRotation: rotation}
	if k, err := lookup(p, id); err == nil {
		c.OldColor, c.OldIntensity, c.OldRotation = k.LightColor, k.LightIntensity, k.LightRotation
	}
	return c
}

func (c *LightCommand) Execute() error {
	if c.NewIntensity < 0 {
		return fmt.Errorf("light intensity %v is negative", c.NewIntensity)
	}
	return c.apply(c.NewColor, c.NewIntensity, c.NewRotation)
}

func (c *LightCommand) Undo() error { return c.apply(c.OldColor, c.OldIntensity, c.OldRotation) }

func (c *LightCommand) apply(color core.Color, intensity float32, rotation math.Vec3) error {
	k, err := lookup(c.Profile, c.ID)
	if err != nil {
		return err
	}
	k.LightColor, k.LightIntensity, k.LightRotation = color, intensity, rotation
	return nil
}

func (c *LightCommand) Description() string { return "Edit light" }
