package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(ComponentNango, &buf, false)

	log.Info("token fetched", "status", 200)

	out := buf.String()
	assert.Contains(t, out, "[NANGO-CLIENT]")
	assert.Contains(t, out, "token fetched")
	assert.Contains(t, out, "status=200")
	assert.NotContains(t, out, colorReset)
}

func TestDebugLevelToggle(t *testing.T) {
	t.Cleanup(func() { SetDebug(false) })

	var quiet bytes.Buffer
	SetDebug(false)
	NewWithWriter(ComponentCLI, &quiet, false).Flow(DirectionOutgoing, "GET /connection")
	assert.Empty(t, quiet.String())

	var loud bytes.Buffer
	SetDebug(true)
	NewWithWriter(ComponentCLI, &loud, false).Flow(DirectionOutgoing, "GET /connection")
	assert.Contains(t, loud.String(), "-> GET /connection")
}

func TestWithAttrsKeepsComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(ComponentScopeCheck, &buf, true)

	log.With("provider", "twitter-v2").Scope("missing scopes")

	assert.Contains(t, buf.String(), "[SCOPE-CHECK]")
	assert.Contains(t, buf.String(), "provider=twitter-v2")

	assert.Contains(t, buf.String(), componentColors[ComponentScopeCheck])
}
