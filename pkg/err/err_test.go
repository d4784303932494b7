package errprocess

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	tests := map[Kind]int{
		KindAuthentication: http.StatusUnauthorized,
		KindAuthorization:  http.StatusForbidden,
		KindNotFound:       http.StatusNotFound,
		KindValidation:     http.StatusBadRequest,
		KindUpstream:       http.StatusInternalServerError,
		KindInternal:       http.StatusInternalServerError,
	}
	for kind, status := range tests {
		assert.Equal(t, status, kind.Status(), kind)
	}
}

func TestAs(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("load: %w", Upstream(cause))

	e := As(wrapped)
	assert.Equal(t, KindUpstream, e.Kind)
	assert.Equal(t, "error.upstream", e.Key)
	assert.ErrorIs(t, e, cause)
	assert.True(t, IsKind(wrapped, KindUpstream))

	plain := As(cause)
	assert.Equal(t, KindInternal, plain.Kind)
	assert.False(t, IsKind(cause, KindInternal))
}

func TestWithArgs(t *testing.T) {
	e := New(KindAuthorization, "error.login_not_allowed", nil).WithArgs("suspended")
	assert.Equal(t, []interface{}{"suspended"}, e.Args)
	assert.Equal(t, "AUTHORIZATION(error.login_not_allowed)", e.Error())
}
