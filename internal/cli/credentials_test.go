package cli

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/ilohealth/hcilo/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func pipedPrompt(stdin string, env map[string]string) (*credentialPrompt, *bytes.Buffer) {
	out := &bytes.Buffer{}
	p := newCredentialPrompt(strings.NewReader(stdin), out, "")
	p.getenv = envFrom(env)
	return p, out
}

func TestCollect_PipedStdin(t *testing.T) {
	p, out := pipedPrompt("admin\ns3cr3t\n", nil)

	creds, err := p.collect()
	require.NoError(t, err)
	assert.Equal(t, "admin", creds.Username)
	assert.Equal(t, "s3cr3t", creds.Password)
	assert.Contains(t, out.String(), "Username: ")
	assert.Contains(t, out.String(), "Password: ")
	assert.NotContains(t, out.String(), "s3cr3t")
}

func TestCollect_PipedWithoutTrailingNewline(t *testing.T) {
	p, _ := pipedPrompt("admin\r\npass", nil)

	creds, err := p.collect()
	require.NoError(t, err)
	assert.Equal(t, "admin", creds.Username)
	assert.Equal(t, "pass", creds.Password)
}

func TestCollect_Environment(t *testing.T) {
	p, out := pipedPrompt("", map[string]string{UsernameEnv: "ops", PasswordEnv: "pw"})
	p.interactive = func() bool { t.Fatal("should not check for a terminal"); return false }

	creds, err := p.collect()
	require.NoError(t, err)
	assert.Equal(t, "ops", creds.Username)
	assert.Equal(t, "pw", creds.Password)
	assert.Empty(t, out.String())
}

func TestCollect_PasswordFromEnvUsernameFromStdin(t *testing.T) {
	p, out := pipedPrompt("admin\n", map[string]string{PasswordEnv: "pw"})

	creds, err := p.collect()
	require.NoError(t, err)
	assert.Equal(t, "admin", creds.Username)
	assert.Equal(t, "pw", creds.Password)
	assert.NotContains(t, out.String(), "Password: ")
}

func TestCollect_DefaultUsername(t *testing.T) {
	p, _ := pipedPrompt("\npw\n", nil)
	p.defaultUser = "Administrator"

	creds, err := p.collect()
	require.NoError(t, err)
	assert.Equal(t, "Administrator", creds.Username, "blank line keeps the configured username")
}

func TestCollect_EmptyValues(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		want  string
	}{
		{"no input", "", "No iLO username given"},
		{"blank username", "  \npw\n", "No iLO username given"},
		{"blank password", "admin\n\n", "No iLO password given"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := pipedPrompt(tt.stdin, nil)
			_, err := p.collect()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrAuth))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCollect_InteractivePrompt(t *testing.T) {
	p, _ := pipedPrompt("", nil)
	p.defaultUser = "Administrator"
	p.interactive = func() bool { return true }

	var gotAskUser, gotAskPass bool
	p.prompt = func(user, pass *string, askUser, askPass bool) error {
		gotAskUser, gotAskPass = askUser, askPass
		assert.Equal(t, "Administrator", *user, "username is pre-filled")
		*pass = "typed"
		return nil
	}

	creds, err := p.collect()
	require.NoError(t, err)
	assert.True(t, gotAskUser)
	assert.True(t, gotAskPass)
	assert.Equal(t, "Administrator", creds.Username)
	assert.Equal(t, "typed", creds.Password)
}

func TestCollect_InteractivePromptAborted(t *testing.T) {
	p, _ := pipedPrompt("", map[string]string{UsernameEnv: "ops"})
	p.interactive = func() bool { return true }
	p.prompt = func(user, pass *string, askUser, askPass bool) error {
		assert.False(t, askUser)
		assert.True(t, askPass)
		return stderrors.New("user aborted")
	}

	_, err := p.collect()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrAuth))
	assert.Contains(t, err.Error(), "Failed to read iLO credentials")
}
