package store

import (
	"encoding/json"
	"fmt"

	"qlcc/internal/model"
)

// Mode is the purpose the drawer was opened for. ModeNone means closed.
type Mode int

const (
	ModeNone Mode = iota
	ModeAdd
	ModeEdit
	ModeView
	ModeUpload
	ModePreview
)

var modeNames = map[Mode]string{
	ModeNone:    "closed",
	ModeAdd:     "add",
	ModeEdit:    "edit",
	ModeView:    "view",
	ModeUpload:  "upload",
	ModePreview: "preview",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("%w: unknown mode %q", ErrInvalidDrawerState, s)
}

func (m Mode) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

func (m *Mode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// DrawerSession is the single modal session of a collection.
// A closed session has ModeNone and no targets.
type DrawerSession[T any] struct {
	Open   bool              `json:"isOpen"`
	Mode   Mode              `json:"mode"`
	Target T                 `json:"targetEntity"`
	File   *model.Attachment `json:"targetFile"`
}

// Drawer is the add/edit/view/upload/preview state machine.
type Drawer[T comparable] struct {
	modes   map[Mode]bool
	session DrawerSession[T]
	onReset []func()
}

// NewDrawer returns a closed drawer offering the given modes.
func NewDrawer[T comparable](modes ...Mode) *Drawer[T] {
	d := &Drawer[T]{modes: make(map[Mode]bool, len(modes))}
	for _, m := range modes {
		if m != ModeNone {
			d.modes[m] = true
		}
	}
	return d
}

func (d *Drawer[T]) Session() DrawerSession[T] { return d.session }

func (d *Drawer[T]) Supports(m Mode) bool { return d.modes[m] }

// OnReset registers fn to run whenever a session ends, either because the
// drawer closes or because another session replaces it.
func (d *Drawer[T]) OnReset(fn func()) { d.onReset = append(d.onReset, fn) }

func (d *Drawer[T]) reset() {
	for _, fn := range d.onReset {
		fn()
	}
}

// Open replaces the current session with a new one in mode m.
func (d *Drawer[T]) Open(m Mode, target T, file *model.Attachment) error {
	if m == ModeNone {
		return fmt.Errorf("%w: use Close to close the drawer", ErrInvalidDrawerState)
	}
	if !d.modes[m] {
		return fmt.Errorf("%w: %s", ErrModeUnsupported, m)
	}
	switch m {
	case ModeAdd:
		if !isZero(target) {
			return fmt.Errorf("%w: add takes no target entity", ErrInvalidDrawerState)
		}
	case ModeEdit, ModeView:
		if isZero(target) {
			return fmt.Errorf("%w: %s needs a target entity", ErrInvalidDrawerState, m)
		}
	case ModePreview:
		if file == nil {
			return fmt.Errorf("%w: preview needs a target file", ErrInvalidDrawerState)
		}
	}
	d.reset()
	d.session = DrawerSession[T]{Open: true, Mode: m, Target: target, File: file}
	return nil
}

// Close resets the session.
func (d *Drawer[T]) Close() {
	if !d.session.Open {
		return
	}
	d.session = DrawerSession[T]{}
	d.reset()
}

// SwitchToEdit moves View to Edit keeping the target entity.
func (d *Drawer[T]) SwitchToEdit() error {
	if !d.session.Open {
		return ErrDrawerClosed
	}
	if d.session.Mode != ModeView {
		return fmt.Errorf("%w: switch to edit from %s", ErrInvalidDrawerState, d.session.Mode)
	}
	if !d.modes[ModeEdit] {
		return fmt.Errorf("%w: %s", ErrModeUnsupported, ModeEdit)
	}
	d.session.Mode = ModeEdit
	d.session.File = nil
	return nil
}

// retarget swaps the target entity when it was replaced by a mutation.
func (d *Drawer[T]) retarget(target T) {
	if d.session.Open && !isZero(d.session.Target) {
		d.session.Target = target
	}
}
