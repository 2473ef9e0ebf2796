package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvbuilder/pkg/client"
	"github.com/artem13815/cvbuilder/pkg/cv"
)

func TestConfigCreatedAndTokenPersisted(t *testing.T) {
	viper.Reset()
	path := filepath.Join(t.TempDir(), "cvctl", "config.yaml")
	t.Setenv("CVCTL_CONFIG", path)

	require.NoError(t, initConfig())
	assert.Equal(t, "http://localhost:8080", cliConfig.Server)
	assert.Empty(t, cliConfig.Token)

	saveToken("tok-123")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tok-123")

	viper.Reset()
	require.NoError(t, initConfig())
	assert.Equal(t, "tok-123", cliConfig.Token)
}

func TestDescribeErrors(t *testing.T) {
	assert.Contains(t, describe(&client.Error{Kind: client.KindAuth, Status: 401}), "cvctl login")

	msg := describe(&client.Error{
		Kind:    client.KindValidation,
		Message: "validation failed",
		Fields:  []cv.FieldError{{Field: "postalCode", Message: "bad format"}},
	})
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "postalCode")
	assert.Contains(t, msg, "bad format")
}

func TestDraftCommandTree(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"draft", "set-cell"})
	require.NoError(t, err)
	assert.Equal(t, "set-cell", cmd.Name())

	cmd, _, err = rootCmd.Find([]string{"details"})
	require.NoError(t, err)
	assert.Equal(t, "whoami", cmd.Name())
}
