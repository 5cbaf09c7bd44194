package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orderhub/backend/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(shared.CodeNotFound))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(shared.CodeParseError))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(shared.CodeCategoryMatchError))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(shared.CodeImportInProgress))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(shared.CodeInsufficientStock))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_NEW"))
}
