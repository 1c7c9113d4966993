package lab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AssetStore_FindAsset(t *testing.T) {
	first := &Asset{AssetID: "LAB-101", AssetName: "HDMI Cable", Available: true, SecurityLevel: 1}
	dup := &Asset{AssetID: "LAB-101", AssetName: "Spare", Available: true, SecurityLevel: 1}
	store := NewAssetStore(first, dup)

	got, err := store.FindAsset("LAB-101")
	require.NoError(t, err)
	assert.Same(t, first, got)

	_, err = store.FindAsset("LAB-999")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "LAB-999")
}

func Test_AssetStore_MarkBorrowed(t *testing.T) {
	a := &Asset{AssetID: "LAB-101", Available: true, SecurityLevel: 1}
	store := NewAssetStore(a)

	require.NoError(t, store.MarkBorrowed(a))
	assert.False(t, a.Available)

	assert.ErrorIs(t, store.MarkBorrowed(a), ErrUnavailable)
	assert.False(t, a.Available)
}

func Test_Roster_FindStudent(t *testing.T) {
	s := &Student{UID: "KRG20281", Name: "Prateek"}
	roster := NewRoster(s)

	got, err := roster.FindStudent("KRG20281")
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = roster.FindStudent("KRG20282")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, roster.Students(), 1)
}
