package model

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContactRequest_EmailFormatOnly(t *testing.T) {
	// domain chưa có MX record vẫn hợp lệ, validate không tra DNS
	req := CreateContactRequest{Name: "Lan", Email: "lan@my-new-startup-domain-0f2c.io", Message: "Xin chào"}
	assert.NoError(t, req.Validate())

	req.Email = "lan@@example"
	var vErrs validation.Errors
	require.ErrorAs(t, req.Validate(), &vErrs)
	assert.Contains(t, vErrs, "email")
}

func TestUpdateContactRequest_EmailFormatOnly(t *testing.T) {
	email := "ops@brand-new-domain-9x1.dev"
	assert.NoError(t, UpdateContactRequest{Email: &email}.Validate())

	bad := "not-an-email"
	var vErrs validation.Errors
	require.ErrorAs(t, UpdateContactRequest{Email: &bad}.Validate(), &vErrs)
	assert.Contains(t, vErrs, "email")
}
