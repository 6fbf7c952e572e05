package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qlcc/internal/model"
)

func TestEncodeParams(t *testing.T) {
	linked := model.LinkLinked
	unlinked := model.LinkUnlinked

	tests := []struct {
		name   string
		filter any
		want   string
	}{
		{name: "empty filter", filter: model.ResidentFilter{}, want: ""},
		{name: "strings", filter: model.ResidentFilter{Name: "A", Building: "B2"}, want: "building=B2&name=A"},
		{name: "numeric pointer", filter: model.UserApartmentFilter{Status: &linked}, want: "status=1"},
		{name: "zero numeric pointer is kept", filter: model.UserApartmentFilter{Status: &unlinked}, want: "status=0"},
		{name: "list", filter: struct {
			Tags []string `json:"tags"`
		}{Tags: []string{"a", "", "b"}}, want: "tags=a&tags=b"},
		{name: "null", filter: struct {
			Owner *string `json:"owner"`
		}{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeParams(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Encode())
		})
	}
}

func TestEncodeParams_RejectsNonObject(t *testing.T) {
	_, err := EncodeParams([]string{"a"})
	assert.Error(t, err)
}

func TestParams_UsesWirePage(t *testing.T) {
	q := Query[model.ResidentFilter]{Filter: model.ResidentFilter{Name: "A"}, Page: 1, Size: 20, FirstPage: 0}

	got, err := Params(q)

	require.NoError(t, err)
	assert.Equal(t, "name=A&page=0&size=20", got.Encode())

	q.FirstPage, q.Page = 1, 3
	got, _ = Params(q)
	assert.Equal(t, "3", got.Get("page"))
}
