package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qlcc/internal/model"
)

func linkStatuses() Statuses[*model.UserApartment, model.LinkStatus] {
	return Statuses[*model.UserApartment, model.LinkStatus]{
		Get:     func(u *model.UserApartment) model.LinkStatus { return u.Status },
		Set:     func(u *model.UserApartment, s model.LinkStatus) { u.Status = s },
		Allowed: model.LinkTransitions,
	}
}

func TestStatuses_Transition(t *testing.T) {
	tests := []struct {
		name    string
		from    model.LinkStatus
		to      string
		want    model.LinkStatus
		wantErr error
	}{
		{name: "pending to linked", from: model.LinkPending, to: `1`, want: model.LinkLinked},
		{name: "pending to rejected", from: model.LinkPending, to: `-1`, want: model.LinkRejected},
		{name: "linked to unlinked", from: model.LinkLinked, to: `0`, want: model.LinkUnlinked},
		{name: "rejected is final", from: model.LinkRejected, to: `1`, wantErr: ErrIllegalTransition},
		{name: "unknown status", from: model.LinkPending, to: `7`, wantErr: ErrValidation},
		{name: "wrong type", from: model.LinkPending, to: `"approved"`, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := model.NewUserApartment()
			u.Status = tt.from

			err := linkStatuses().Transition(u, json.RawMessage(tt.to))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, u.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.Status)
		})
	}
}

func TestStatuses_Allows(t *testing.T) {
	p := Statuses[*model.Resident, model.ResidentStatus]{Allowed: model.ResidentTransitions}

	assert.True(t, p.Allows(model.ResidentPending, model.ResidentActive))
	assert.False(t, p.Allows(model.ResidentActive, model.ResidentPending))
	assert.False(t, p.Allows(model.ResidentActive, model.ResidentActive))
}

func TestConfirmation(t *testing.T) {
	var c Confirmation[int64]
	assert.ErrorIs(t, c.Confirm(1), ErrPreconditionNotMet)

	c.Request(1)
	assert.ErrorIs(t, c.Confirm(2), ErrPreconditionNotMet)
	open, target := c.State()
	assert.True(t, open)
	assert.Equal(t, int64(1), target)

	require.NoError(t, c.Confirm(1))
	open, _ = c.State()
	assert.False(t, open)
	assert.ErrorIs(t, c.Confirm(1), ErrPreconditionNotMet)
}
