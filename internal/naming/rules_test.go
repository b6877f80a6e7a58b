package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeSegment(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"MyHTTPClient", "my-http-client"},
		{"handlePauseSubscription", "handle-pause-subscription"},
		{"Billing Settings", "billing-settings"},
		{"  Save & Continue  ", "save-continue"},
		{"3D Viewer", "d-viewer"},
		{"", ""},
		{"already-kebab", "already-kebab"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SanitizeSegment(c.in), "input %q", c.in)
	}
}

func TestRouteSegments(t *testing.T) {
	assert.Equal(t, []string{"settings", "billing"}, RouteSegments("/settings/billing"))
	assert.Nil(t, RouteSegments(""))
	assert.Equal(t, []string{"a"}, RouteSegments("//a//"))
}

func TestHandlerSegment(t *testing.T) {
	assert.Equal(t, "pause-subscription", HandlerSegment("handlePauseSubscription"))
	assert.Equal(t, "click", HandlerSegment("onClick"))
	assert.Equal(t, "", HandlerSegment(""))
	assert.Equal(t, "only", HandlerSegment("only"))
}
