package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/services"
)

func TestNextState(t *testing.T) {
	cases := []struct {
		state services.UploadState
		event services.UploadEvent
		next  services.UploadState
	}{
		{services.StatePreparing, services.EventStart, services.StateValidating},
		{services.StateValidating, services.EventValidationFailed, services.StateError},
		{services.StateValidating, services.EventAuthRequired, services.StateAuthenticating},
		{services.StateValidating, services.EventAuthenticated, services.StateUploading},
		{services.StateAuthenticating, services.EventAuthenticated, services.StateUploading},
		{services.StateAuthenticating, services.EventAuthFailed, services.StateError},
		{services.StateUploading, services.EventUploadFailed, services.StateError},
		{services.StateUploading, services.EventUploadSucceeded, services.StateCompleted},
		{services.StateUploading, services.EventPayratesPending, services.StateSettingPayrates},
		{services.StateSettingPayrates, services.EventPayratesFinished, services.StateCompleted},
	}
	for _, c := range cases {
		next, ok := services.NextState(c.state, c.event)
		require.True(t, ok, "%s + %s", c.state, c.event)
		assert.Equal(t, c.next, next, "%s + %s", c.state, c.event)
	}
}

func TestNextStateRejectsUndefinedTransitions(t *testing.T) {
	undefined := []struct {
		state services.UploadState
		event services.UploadEvent
	}{
		{services.StateCompleted, services.EventStart},
		{services.StateError, services.EventStart},
		{services.StatePreparing, services.EventUploadSucceeded},
		{services.StateUploading, services.EventStart},
		{services.StateSettingPayrates, services.EventUploadFailed},
	}
	for _, c := range undefined {
		_, ok := services.NextState(c.state, c.event)
		assert.False(t, ok, "%s + %s should be undefined", c.state, c.event)
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, services.StateCompleted.Terminal())
	assert.True(t, services.StateError.Terminal())
	assert.False(t, services.StateUploading.Terminal())
	assert.False(t, services.StatePreparing.Terminal())
}
