package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_Prefixes(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Success("voucher created")
	c.Error("cannot reach server")
	c.Info("session expired")

	out := buf.String()
	assert.Contains(t, out, "ok: voucher created\n")
	assert.Contains(t, out, "error: cannot reach server\n")
	assert.Contains(t, out, "session expired\n")
}

func TestRecorder_CapturesInOrder(t *testing.T) {
	r := NewRecorder()
	r.Info("one")
	r.Error("two")

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Level: "info", Message: "one"}, entries[0])
	assert.Equal(t, Entry{Level: "error", Message: "two"}, entries[1])
}

func TestRecorder_CountContaining(t *testing.T) {
	r := NewRecorder()
	r.Info("session expired, log in again")
	r.Error("client deleted")
	r.Info("session expired, log in again")

	assert.Equal(t, 2, r.CountContaining("session expired"))
	assert.Equal(t, 0, r.CountContaining("no such message"))
}
