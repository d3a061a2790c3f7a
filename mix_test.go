package linkid_test

import (
	"testing"

	"github.com/fwojciec/linkid"
	"github.com/stretchr/testify/assert"
)

func TestDiscriminateMix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		collection string
		item       string
		wantFlag   linkid.MixFlag
		wantID     string
	}{
		{name: "neither", wantFlag: linkid.MixNone},
		{name: "collection only", collection: "5", wantFlag: linkid.MixContainer, wantID: "5"},
		{name: "item only", item: "6", wantFlag: linkid.MixItem, wantID: "6"},
		{name: "collection wins", collection: "5", item: "6", wantFlag: linkid.MixContainer, wantID: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flag, id := linkid.DiscriminateMix(tt.collection, tt.item)

			assert.Equal(t, tt.wantFlag, flag)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestMixFlag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "null", linkid.MixNone.String())
	assert.Equal(t, "true", linkid.MixContainer.String())
	assert.Equal(t, "false", linkid.MixItem.String())

	_, ok := linkid.MixNone.Container()
	assert.False(t, ok)

	container, ok := linkid.MixContainer.Container()
	assert.True(t, ok)
	assert.True(t, container)

	container, ok = linkid.MixItem.Container()
	assert.True(t, ok)
	assert.False(t, container)
}
