package lab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RunBatch_DemoSequence(t *testing.T) {
	// arrange
	roster, store := DemoRoster().Build()
	audit := &recordingAudit{}
	svc := NewCheckoutService(roster, store, WithAuditLogger(audit))
	var results []BatchResult

	// act
	ok, failed := RunBatch(svc, DemoBatch().Requests, func(r BatchResult) { results = append(results, r) })

	// assert
	assert.Equal(t, 1, ok)
	assert.Equal(t, 2, failed)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	assert.Equal(t, "TXN-20260221-LAB-101-KRG20281", results[0].Receipt.ID)
	assert.ErrorIs(t, results[1].Err, ErrNotFound)
	assert.Nil(t, results[1].Receipt)
	assert.ErrorIs(t, results[2].Err, ErrPolicyViolation)
	assert.Len(t, audit.entries, 3)
}

func Test_RunBatch_ConstructionFailureNeverReachesService(t *testing.T) {
	roster, store := DemoRoster().Build()
	audit := &recordingAudit{}
	svc := NewCheckoutService(roster, store, WithAuditLogger(audit))
	var got error

	ok, failed := RunBatch(svc, []RequestRecord{{UID: "KRG20281", AssetID: "LAB-101", Hours: 7}}, func(r BatchResult) { got = r.Err })

	assert.Equal(t, 0, ok)
	assert.Equal(t, 1, failed)
	assert.ErrorIs(t, got, ErrInvalidArgument)
	assert.Empty(t, audit.entries)
}

func Test_LoadBatchFile(t *testing.T) {
	bf, err := LoadBatchFile("testdata/batch.yaml")
	require.NoError(t, err)
	require.Len(t, bf.Requests, 4)
	assert.Equal(t, RequestRecord{UID: "KRG20281", AssetID: "LAB-101", Hours: 5}, bf.Requests[0])
	assert.Equal(t, 9, bf.Requests[3].Hours)
}

func Test_LoadRosterFile(t *testing.T) {
	rf, err := LoadRosterFile("testdata/roster.yaml")
	require.NoError(t, err)
	assert.Equal(t, DemoRoster(), rf)

	_, err = LoadRosterFile("testdata/missing.yaml")
	assert.Error(t, err)
}
