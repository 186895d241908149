package instance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	testCases := []struct {
		name      string
		inputName string
		wantErr   bool
		errMsg    string
	}{
		{name: "valid simple name", inputName: "prod"},
		{name: "valid name with hyphens", inputName: "tableview-eu-1"},
		{name: "single character name", inputName: "a"},
		{name: "empty name", inputName: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "name with uppercase", inputName: "Ankara", wantErr: true, errMsg: "must be lowercase"},
		{name: "name starting with hyphen", inputName: "-prod", wantErr: true, errMsg: "not at start/end"},
		{name: "name ending with hyphen", inputName: "prod-", wantErr: true, errMsg: "not at start/end"},
		{name: "name with colon", inputName: "prod:1", wantErr: true, errMsg: "must be lowercase alphanumeric"},
		{name: "non-ascii name", inputName: "izmir-ı", wantErr: true, errMsg: "must be lowercase alphanumeric"},
		{name: "name too long", inputName: strings.Repeat("a", 64), wantErr: true, errMsg: "too long"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateName(tc.inputName)
			if tc.wantErr {
				assert.Error(t, err)
				if tc.errMsg != "" {
					assert.Contains(t, err.Error(), tc.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName_MaxLength(t *testing.T) {
	assert.NoError(t, ValidateName(strings.Repeat("a", MaxNameLength)))
}

func TestResolve(t *testing.T) {
	t.Run("blank falls back to default", func(t *testing.T) {
		name, err := Resolve("  ")
		require.NoError(t, err)
		assert.Equal(t, DefaultName, name)
	})

	t.Run("keeps a valid name", func(t *testing.T) {
		name, err := Resolve("staging")
		require.NoError(t, err)
		assert.Equal(t, "staging", name)
	})

	t.Run("rejects an invalid name", func(t *testing.T) {
		_, err := Resolve("Staging")
		assert.Error(t, err)
	})
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, "tableview:prod", Namespace("prod"))
}
