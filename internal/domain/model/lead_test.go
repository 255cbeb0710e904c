package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Ann.Lee@Acme.COM", "ann.lee@acme.com"},
		{"trims whitespace", "  ann@acme.com  ", "ann@acme.com"},
		{"whitespace only becomes empty", "   ", ""},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}

func TestLeadStatus_Valid(t *testing.T) {
	for _, s := range []LeadStatus{LeadStatusSourced, LeadStatusVerified, LeadStatusEnriched, LeadStatusRejected} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, LeadStatus("qualified").Valid())
	assert.False(t, LeadStatus("").Valid())
}

func TestLeadStatus_Updatable(t *testing.T) {
	assert.True(t, LeadStatusSourced.Updatable())
	assert.True(t, LeadStatusVerified.Updatable())
	assert.True(t, LeadStatusEnriched.Updatable())
	assert.False(t, LeadStatusRejected.Updatable())
	assert.False(t, LeadStatus("bogus").Updatable())
}

func TestCreateLeadRequest_Validate(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		req := CreateLeadRequest{Name: "  Ann Lee  "}
		require.NoError(t, req.Validate())
		assert.Equal(t, "Ann Lee", req.Name)
		assert.Equal(t, LeadStatusSourced, req.Status)
		assert.Equal(t, LeadSourceWebsite, req.Source)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		req := CreateLeadRequest{Name: "   "}
		require.Error(t, req.Validate())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		req := CreateLeadRequest{Name: "Ann", Status: "converted"}
		require.Error(t, req.Validate())
	})
}

func TestUpdateLeadRequest_Validate(t *testing.T) {
	verified := LeadStatusVerified
	rejected := LeadStatusRejected

	require.NoError(t, (&UpdateLeadRequest{Status: &verified}).Validate())
	require.Error(t, (&UpdateLeadRequest{}).Validate())
	// rejected is not settable through PATCH
	require.Error(t, (&UpdateLeadRequest{Status: &rejected}).Validate())
}
