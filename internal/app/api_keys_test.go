package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jinsol-dev/busango/internal/appconf"
)

func testApp() *Application {
	return &Application{
		Config: appconf.Config{
			ApiKeys: []string{"key"},
		},
	}
}

func TestBlankKeyIsInvalid(t *testing.T) {
	assert.True(t, testApp().IsInvalidAPIKey(""))
}

func TestUnknownKeyIsInvalid(t *testing.T) {
	assert.True(t, testApp().IsInvalidAPIKey("other"))
}

func TestConfiguredKeyIsValid(t *testing.T) {
	assert.False(t, testApp().IsInvalidAPIKey("key"))
}

func TestRequestHasInvalidAPIKey(t *testing.T) {
	app := testApp()

	r := httptest.NewRequest("GET", "/api/where/current-time.json?key=key", nil)
	assert.False(t, app.RequestHasInvalidAPIKey(r))

	r = httptest.NewRequest("GET", "/api/where/current-time.json", nil)
	assert.True(t, app.RequestHasInvalidAPIKey(r))
}
