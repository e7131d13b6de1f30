// internal/session/store_test.go
package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	st := NewStore(newLedger(t))

	token, sess := st.Create()
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, st.Len())

	got, ok := st.Get(token)
	assert.True(t, ok)
	assert.Same(t, sess, got)

	other, _ := st.Create()
	assert.NotEqual(t, token, other)

	st.Delete(token)
	_, ok = st.Get(token)
	assert.False(t, ok)
	assert.Equal(t, 1, st.Len())
}
