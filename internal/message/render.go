// Package message renders a placement opportunity into channel-specific
// payloads. All renderers are pure: same input, byte-identical output.
package message

import (
	"fmt"
	"html/template"
	"strings"
)

// GroupChatText renders the group-broadcast chat message. It carries no
// greeting and ends with a recipient-count footer.
func GroupChatText(op Opportunity, recipientCount int) string {
	var b strings.Builder
	b.WriteString("📢 **New Placement Opportunity!**\n\n")
	b.WriteString("**Company:** " + op.CompanyName + "\n")
	b.WriteString("**Job Title:** " + op.JobTitle + "\n")

	if op.CTCUG != "" {
		b.WriteString("**UG CTC:** " + op.CTCUG + "\n")
	}
	if op.CTCPG != "" {
		b.WriteString("**PG CTC:** " + op.CTCPG + "\n")
	}
	if op.Stipend != "" {
		b.WriteString("**Stipend:** " + op.Stipend + "\n")
	}
	if op.Eligibility != "" {
		b.WriteString("\n**Eligibility:** " + op.Eligibility + "\n")
	}
	if op.RegistrationLink != "" {
		b.WriteString("\n**Registration Link:** " + op.RegistrationLink + "\n")
	}
	if op.AdditionalNotes != "" {
		b.WriteString("\n**Additional Notes:** " + op.AdditionalNotes + "\n")
	}

	b.WriteString(fmt.Sprintf("\n📊 **Total Students Notified:** %d", recipientCount))
	return b.String()
}

// PersonalChatText renders a recipient-addressed chat message: greeting first,
// then the same optional fields in the same fixed order, no footer.
func PersonalChatText(op Opportunity, recipientName string) string {
	var b strings.Builder
	b.WriteString("Hello " + recipientName + ",\n\n")
	b.WriteString("New placement opportunity at " + op.CompanyName + "!\n\n")
	b.WriteString("Job Title: " + op.JobTitle + "\n\n")

	if op.CTCUG != "" {
		b.WriteString("CTC for UG: " + op.CTCUG + "\n")
	}
	if op.CTCPG != "" {
		b.WriteString("CTC for PG: " + op.CTCPG + "\n")
	}
	if op.Stipend != "" {
		b.WriteString("Stipend: " + op.Stipend + "\n")
	}
	if op.Eligibility != "" {
		b.WriteString("\nEligibility: " + op.Eligibility + "\n")
	}
	if op.RegistrationLink != "" {
		b.WriteString("\nRegistration Link: " + op.RegistrationLink + "\n")
	}
	if op.AdditionalNotes != "" {
		b.WriteString("\nAdditional Notes: " + op.AdditionalNotes + "\n")
	}
	return b.String()
}

var emailTmpl = template.Must(template.New("email").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2c3e50;">Hello {{.Name}}!</h2>
        <p>We have a new placement opportunity for you:</p>

        <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <h3 style="color: #2c3e50; margin-top: 0;">{{.Op.Title}}</h3>
            <p><strong>Company:</strong> {{.Op.CompanyName}}</p>
            <p><strong>Job Title:</strong> {{.Op.JobTitle}}</p>
            {{- if .Op.CTCUG}}
            <p><strong>CTC for UG:</strong> {{.Op.CTCUG}}</p>
            {{- end}}
            {{- if .Op.CTCPG}}
            <p><strong>CTC for PG:</strong> {{.Op.CTCPG}}</p>
            {{- end}}
            {{- if .Op.Stipend}}
            <p><strong>Stipend:</strong> {{.Op.Stipend}}</p>
            {{- end}}
            {{- if .Op.Eligibility}}
            <p><strong>Eligibility:</strong> {{.Op.Eligibility}}</p>
            {{- end}}
            {{- if .Op.RegistrationLink}}
            <p><strong>Registration Link:</strong> <a href="{{.Op.RegistrationLink}}" style="color: #3498db;">Click here to register</a></p>
            {{- end}}
            {{- if .Op.AdditionalNotes}}
            <p><strong>Additional Notes:</strong> {{.Op.AdditionalNotes}}</p>
            {{- end}}
        </div>

        <p>Best regards,<br>Placement Cell - KLU</p>
    </div>
</body>
</html>
`))

// Email renders the personalized email payload. The subject is derived from
// the company name; the body is the fixed HTML card with optional fields
// conditionally included.
func Email(op Opportunity, recipientName string) (EmailPayload, error) {
	var b strings.Builder
	err := emailTmpl.Execute(&b, struct {
		Name string
		Op   Opportunity
	}{Name: recipientName, Op: op})
	if err != nil {
		return EmailPayload{}, fmt.Errorf("render email: %w", err)
	}
	return EmailPayload{
		Subject:  "New Placement Opportunity - " + op.CompanyName,
		HTMLBody: b.String(),
	}, nil
}
