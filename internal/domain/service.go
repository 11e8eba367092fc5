package domain

import (
	"fmt"

	"notifygate/pkg/iputil"
)

// ServiceRecord is a registered API consumer's profile: who the sender is,
// which source-IP ranges it may call from, and which recipients a
// limited-write sender may target. An empty AuthorizedCIDRs set means no IP
// restriction is configured.
type ServiceRecord struct {
	ServiceID               string
	ServiceName             string
	OrganizationName        string
	DepartmentName          string
	OrganizationFiscalCode  string
	IsVisible               bool
	MaxAllowedPaymentAmount int64
	AuthorizedCIDRs         iputil.CIDRSet
	AuthorizedRecipients    RecipientSet
}

// Clone returns a deep copy so stored records can be handed out without
// sharing the set containers.
func (s ServiceRecord) Clone() ServiceRecord {
	out := s
	out.AuthorizedCIDRs = make(iputil.CIDRSet, len(s.AuthorizedCIDRs))
	for prefix := range s.AuthorizedCIDRs {
		out.AuthorizedCIDRs[prefix] = struct{}{}
	}
	out.AuthorizedRecipients = make(RecipientSet, len(s.AuthorizedRecipients))
	for fc := range s.AuthorizedRecipients {
		out.AuthorizedRecipients[fc] = struct{}{}
	}
	return out
}

// ServicePayload is the public JSON form of a service record.
type ServicePayload struct {
	ServiceID               string   `json:"service_id"`
	ServiceName             string   `json:"service_name"`
	OrganizationName        string   `json:"organization_name"`
	DepartmentName          string   `json:"department_name"`
	OrganizationFiscalCode  string   `json:"organization_fiscal_code,omitempty"`
	IsVisible               bool     `json:"is_visible"`
	MaxAllowedPaymentAmount int64    `json:"max_allowed_payment_amount"`
	AuthorizedCIDRs         []string `json:"authorized_cidrs"`
	AuthorizedRecipients    []string `json:"authorized_recipients"`
}

// ToPayload converts the record to its public form. Set-valued fields come
// out sorted so the payload is deterministic.
func (s ServiceRecord) ToPayload() ServicePayload {
	return ServicePayload{
		ServiceID:               s.ServiceID,
		ServiceName:             s.ServiceName,
		OrganizationName:        s.OrganizationName,
		DepartmentName:          s.DepartmentName,
		OrganizationFiscalCode:  s.OrganizationFiscalCode,
		IsVisible:               s.IsVisible,
		MaxAllowedPaymentAmount: s.MaxAllowedPaymentAmount,
		AuthorizedCIDRs:         s.AuthorizedCIDRs.Strings(),
		AuthorizedRecipients:    s.AuthorizedRecipients.Strings(),
	}
}

// ServiceFromPayload validates a public payload and rebuilds the record with
// fresh set containers.
func ServiceFromPayload(p ServicePayload) (ServiceRecord, error) {
	switch {
	case p.ServiceID == "":
		return ServiceRecord{}, fmt.Errorf("service_id is required")
	case p.ServiceName == "":
		return ServiceRecord{}, fmt.Errorf("service_name is required")
	case p.OrganizationName == "":
		return ServiceRecord{}, fmt.Errorf("organization_name is required")
	case p.DepartmentName == "":
		return ServiceRecord{}, fmt.Errorf("department_name is required")
	case p.MaxAllowedPaymentAmount < 0:
		return ServiceRecord{}, fmt.Errorf("max_allowed_payment_amount must not be negative")
	}

	cidrs, err := iputil.ParseCIDRs(p.AuthorizedCIDRs)
	if err != nil {
		return ServiceRecord{}, fmt.Errorf("authorized_cidrs: %w", err)
	}

	recipients := make(RecipientSet, len(p.AuthorizedRecipients))
	for _, raw := range p.AuthorizedRecipients {
		fc, err := ParseFiscalCode(raw)
		if err != nil {
			return ServiceRecord{}, fmt.Errorf("authorized_recipients: %w", err)
		}
		recipients[fc] = struct{}{}
	}

	return ServiceRecord{
		ServiceID:               p.ServiceID,
		ServiceName:             p.ServiceName,
		OrganizationName:        p.OrganizationName,
		DepartmentName:          p.DepartmentName,
		OrganizationFiscalCode:  p.OrganizationFiscalCode,
		IsVisible:               p.IsVisible,
		MaxAllowedPaymentAmount: p.MaxAllowedPaymentAmount,
		AuthorizedCIDRs:         cidrs,
		AuthorizedRecipients:    recipients,
	}, nil
}
