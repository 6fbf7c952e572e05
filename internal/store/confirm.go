package store

// Confirmation is a two-step confirm dialog. An action on target only goes
// through when the dialog was opened for that same target.
type Confirmation[K comparable] struct {
	open   bool
	target K
}

// Request opens the dialog for target.
func (c *Confirmation[K]) Request(target K) {
	c.open = true
	c.target = target
}

func (c *Confirmation[K]) Cancel() {
	var zero K
	c.open = false
	c.target = zero
}

// Confirm consumes the dialog. It fails with ErrPreconditionNotMet when the
// dialog is closed or was opened for another target.
func (c *Confirmation[K]) Confirm(target K) error {
	if !c.open || c.target != target {
		return ErrPreconditionNotMet
	}
	c.Cancel()
	return nil
}

func (c *Confirmation[K]) State() (open bool, target K) {
	return c.open, c.target
}
