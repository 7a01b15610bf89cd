package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name string `json:"name" binding:"required"`
	PIN  string `json:"pin" binding:"required,len=4,numeric"`
}

func TestBindingErrors(t *testing.T) {
	err := binding.Validator.ValidateStruct(sampleRequest{PIN: "12"})
	require.Error(t, err)

	details := BindingErrors(err)
	require.Len(t, details, 2)

	assert.Equal(t, "Name", details[0].Field)
	assert.Equal(t, "required", details[0].Tag)
	assert.Equal(t, "Name is required", details[0].Message)

	assert.Equal(t, "PIN", details[1].Field)
	assert.Equal(t, "len", details[1].Tag)
	assert.Equal(t, "PIN must be exactly 4 characters", details[1].Message)
}

func TestBindingErrors_Valid(t *testing.T) {
	err := binding.Validator.ValidateStruct(sampleRequest{Name: "Sam", PIN: "1234"})
	require.NoError(t, err)
	assert.Nil(t, BindingErrors(err))
}

func TestBindingErrors_NotValidation(t *testing.T) {
	assert.Nil(t, BindingErrors(errors.New("unexpected EOF")))
}

func TestRespondWithValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithValidationErrors(c, []ValidationError{
		{Field: "PIN", Tag: "numeric", Message: "PIN must contain only digits"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"details"`)
	assert.Contains(t, w.Body.String(), "PIN must contain only digits")
}
