package message

import (
	"errors"
	"strings"
)

// Opportunity is the structured placement notice an admin broadcasts.
// It is immutable once submitted; only CompanyName and JobTitle are required.
type Opportunity struct {
	Title            string `json:"title" form:"title"`
	CompanyName      string `json:"company_name" form:"company_name"`
	JobTitle         string `json:"job_title" form:"job_title"`
	CTCUG            string `json:"ctc_ug,omitempty" form:"ctc_ug"`
	CTCPG            string `json:"ctc_pg,omitempty" form:"ctc_pg"`
	Stipend          string `json:"stipend,omitempty" form:"stipend"`
	Eligibility      string `json:"eligibility,omitempty" form:"eligibility"`
	RegistrationLink string `json:"registration_link,omitempty" form:"registration_link"`
	AdditionalNotes  string `json:"additional_notes,omitempty" form:"additional_notes"`
}

var ErrIncomplete = errors.New("opportunity needs company_name and job_title")

func (o Opportunity) Validate() error {
	if strings.TrimSpace(o.CompanyName) == "" || strings.TrimSpace(o.JobTitle) == "" {
		return ErrIncomplete
	}
	return nil
}

// EmailPayload is the rendered email form of an opportunity.
type EmailPayload struct {
	Subject  string
	HTMLBody string
}
