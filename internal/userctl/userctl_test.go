package userctl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstepanenko/storefront/internal/common"
	"github.com/dstepanenko/storefront/internal/server/models"
)

type fakeRegistrar struct {
	err        error
	gotEmail   string
	gotPass    string
	gotProfile models.Profile
}

func (f *fakeRegistrar) Register(ctx context.Context, email, password string, profile models.Profile) (*models.User, error) {
	f.gotEmail, f.gotPass, f.gotProfile = email, password, profile
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: 1, Email: email, Profile: profile}, nil
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions([]string{
		"-email", "john@example.com", "-firstname", "John", "-lastname", "Doe",
		"-gender", "male", "-birthday", "1975-01-02",
		"-d", "postgres://elsewhere", // config flag, must be ignored here
	})
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", opts.Email)
	assert.Equal(t, "John", opts.Firstname)
	assert.Equal(t, "1975-01-02", opts.Birthday)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) { return []byte("hunter2"), nil }

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(pw))
	assert.Contains(t, out.String(), "Enter password:")
}

func TestRegister_Success(t *testing.T) {
	reg := &fakeRegistrar{}
	opts := &Options{
		Email: "john@example.com", Firstname: "John", Lastname: "Doe",
		Gender: "male", Birthday: "1975-01-02",
	}

	var out bytes.Buffer
	err := register(context.Background(), reg, opts, "secret", &out)
	require.NoError(t, err)

	assert.Equal(t, "john@example.com", reg.gotEmail)
	assert.Equal(t, "secret", reg.gotPass)
	assert.Equal(t, int64(157766400), reg.gotProfile.Birthday)
	assert.Contains(t, out.String(), "Registered john@example.com")
}

func TestRegister_Validation(t *testing.T) {
	reg := &fakeRegistrar{}

	tests := []struct {
		name string
		opts *Options
		want string
	}{
		{"bad email", &Options{Email: "nope", Birthday: "1975-01-02"}, "invalid e-mail"},
		{"bad birthday", &Options{Email: "a@b.cc", Birthday: "tomorrow"}, "invalid birthday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := register(context.Background(), reg, tt.opts, "x", &out)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "got %v", err)
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	reg := &fakeRegistrar{err: common.ErrorDuplicateEmail}
	opts := &Options{Email: "john@example.com", Birthday: "1975-01-02"}

	var out bytes.Buffer
	err := register(context.Background(), reg, opts, "x", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
