package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	const u = "https://pay.example.com/x"
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"linux", "xdg-open", []string{u}},
		{"freebsd", "xdg-open", []string{u}},
		{"darwin", "open", []string{u}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", u}},
	}
	for _, tt := range tests {
		name, args := Command(tt.goos, u)
		assert.Equal(t, tt.name, name, tt.goos)
		assert.Equal(t, tt.args, args, tt.goos)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("https://pay.cakto.com.br/ryddo72_692021"))
	assert.NoError(t, Validate("http://localhost:8080/pay"))

	for _, bad := range []string{"", "pay.example.com", "ftp://example.com", "https://", "javascript:alert(1)"} {
		assert.ErrorIs(t, Validate(bad), ErrInvalidURL, bad)
	}
}

func TestBrowserOpener(t *testing.T) {
	var gotName string
	var gotArgs []string
	o := &BrowserOpener{
		GOOS: "darwin",
		Run: func(_ context.Context, name string, args ...string) error {
			gotName, gotArgs = name, args
			return nil
		},
	}

	require.NoError(t, o.Open(context.Background(), "https://pay.example.com/x"))
	assert.Equal(t, "open", gotName)
	assert.Equal(t, []string{"https://pay.example.com/x"}, gotArgs)
}

func TestBrowserOpenerErrors(t *testing.T) {
	called := false
	o := &BrowserOpener{
		GOOS: "linux",
		Run: func(context.Context, string, ...string) error {
			called = true
			return errors.New("no display")
		},
	}

	err := o.Open(context.Background(), "not a url")
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.False(t, called, "runner must not run for an invalid URL")

	err = o.Open(context.Background(), "https://pay.example.com/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xdg-open")
}
