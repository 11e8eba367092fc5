package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validServicePayload() ServicePayload {
	return ServicePayload{
		ServiceID:               "sub-ok",
		ServiceName:             "Road maintenance alerts",
		OrganizationName:        "City of Testopoli",
		DepartmentName:          "Public Works",
		OrganizationFiscalCode:  "12345678901",
		IsVisible:               true,
		MaxAllowedPaymentAmount: 5000,
		AuthorizedCIDRs:         []string{"10.0.0.0/24", "192.168.1.7"},
		AuthorizedRecipients:    []string{"RSSMRA85T10A562S", "AAAAAA00A00A000A"},
	}
}

func TestServiceFromPayload(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		rec, err := ServiceFromPayload(validServicePayload())
		require.NoError(t, err)

		assert.Equal(t, "sub-ok", rec.ServiceID)
		assert.Len(t, rec.AuthorizedCIDRs, 2)
		assert.True(t, rec.AuthorizedRecipients.Has(FiscalCode("RSSMRA85T10A562S")))
	})

	t.Run("missing required fields", func(t *testing.T) {
		for _, mutate := range []func(*ServicePayload){
			func(p *ServicePayload) { p.ServiceID = "" },
			func(p *ServicePayload) { p.ServiceName = "" },
			func(p *ServicePayload) { p.OrganizationName = "" },
			func(p *ServicePayload) { p.DepartmentName = "" },
			func(p *ServicePayload) { p.MaxAllowedPaymentAmount = -1 },
		} {
			p := validServicePayload()
			mutate(&p)
			_, err := ServiceFromPayload(p)
			assert.Error(t, err)
		}
	})

	t.Run("malformed cidr", func(t *testing.T) {
		p := validServicePayload()
		p.AuthorizedCIDRs = []string{"10.0.0.0/33"}
		_, err := ServiceFromPayload(p)
		assert.ErrorContains(t, err, "authorized_cidrs")
	})

	t.Run("malformed recipient", func(t *testing.T) {
		p := validServicePayload()
		p.AuthorizedRecipients = []string{"NOT-A-CODE"}
		_, err := ServiceFromPayload(p)
		assert.ErrorContains(t, err, "authorized_recipients")
	})
}

func TestServiceRecordRoundTrip(t *testing.T) {
	in := validServicePayload()
	rec, err := ServiceFromPayload(in)
	require.NoError(t, err)

	out := rec.ToPayload()
	assert.Equal(t, in.ServiceID, out.ServiceID)
	assert.Equal(t, in.MaxAllowedPaymentAmount, out.MaxAllowedPaymentAmount)
	assert.ElementsMatch(t, []string{"10.0.0.0/24", "192.168.1.7/32"}, out.AuthorizedCIDRs)
	assert.ElementsMatch(t, in.AuthorizedRecipients, out.AuthorizedRecipients)
}

func TestServiceRecordClone(t *testing.T) {
	rec, err := ServiceFromPayload(validServicePayload())
	require.NoError(t, err)

	clone := rec.Clone()
	for fc := range clone.AuthorizedRecipients {
		delete(clone.AuthorizedRecipients, fc)
	}
	assert.Len(t, rec.AuthorizedRecipients, 2, "clone must not share set containers")
}

func TestParseFiscalCode(t *testing.T) {
	fc, err := ParseFiscalCode(" rssmra85t10a562s ")
	require.NoError(t, err)
	assert.Equal(t, FiscalCode("RSSMRA85T10A562S"), fc)

	_, err = ParseFiscalCode("RSSMRA85T10")
	assert.Error(t, err)
}
