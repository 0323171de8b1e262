package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecord_SetIsWriteOnce(t *testing.T) {
	r := NewRecord()
	require.True(t, r.Set(FieldDestination, "Bali"))
	require.False(t, r.Set(FieldDestination, "Paris"))

	v, ok := r.Get(FieldDestination)
	require.True(t, ok)
	require.Equal(t, "Bali", v)
	require.Equal(t, 1, r.Len())
}

func TestRecord_SetRejectsEmptyKey(t *testing.T) {
	r := NewRecord()
	require.False(t, r.Set("", "x"))
	require.Zero(t, r.Len())
}

func TestRecord_OverrideOnlyContactPreference(t *testing.T) {
	r := NewRecord()
	require.True(t, r.Set(FieldContactPreference, "email"))
	require.True(t, r.Override(FieldContactPreference, "phone"))
	v, _ := r.Get(FieldContactPreference)
	require.Equal(t, "phone", v)

	require.True(t, r.Set(FieldEmail, "a@b.c"))
	require.False(t, r.Override(FieldEmail, "x@y.z"))
	v, _ = r.Get(FieldEmail)
	require.Equal(t, "a@b.c", v)
	require.Equal(t, []string{FieldContactPreference, FieldEmail}, r.Keys())
}

func TestRecord_FieldsReturnsCopy(t *testing.T) {
	r := NewRecord()
	r.Set(FieldPhone, "555")
	f := r.Fields()
	f[FieldPhone] = "changed"
	v, _ := r.Get(FieldPhone)
	require.Equal(t, "555", v)
}

func TestNewLead_FlatLayout(t *testing.T) {
	r := NewRecord()
	r.Set(FieldDestination, "Bali")
	ts := time.Date(2026, 3, 1, 10, 30, 0, 0, time.FixedZone("x", 3600))

	lead := NewLead("sess-1", r, ts)
	require.Equal(t, "sess-1", lead.SessionID)
	require.Equal(t, time.UTC, lead.Timestamp.Location())

	flat := lead.Flat()
	require.Equal(t, "Bali", flat[FieldDestination])
	require.Equal(t, "sess-1", flat[KeySessionID])
	require.Equal(t, "2026-03-01T09:30:00Z", flat[KeyTimestamp])
	require.Len(t, lead.Fields, 1)
}

func TestNewLead_NilRecord(t *testing.T) {
	lead := NewLead("s", nil, time.Now())
	require.NotNil(t, lead.Fields)
	require.Empty(t, lead.Fields)
}
