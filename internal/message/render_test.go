package message

import (
	"strings"
	"testing"
)

var fullOp = Opportunity{
	Title:            "Summer Internship Drive",
	CompanyName:      "Tech Solutions Inc.",
	JobTitle:         "Software Developer Intern",
	CTCUG:            "3-5 LPA",
	CTCPG:            "6 LPA",
	Stipend:          "Rs. 15k/month",
	Eligibility:      "CGPA >= 7.0, no active backlogs",
	RegistrationLink: "https://example.com/register",
	AdditionalNotes:  "Carry your ID card",
}

func TestValidate(t *testing.T) {
	t.Parallel()
	if err := fullOp.Validate(); err != nil {
		t.Fatalf("Validate(full) = %v", err)
	}
	for _, op := range []Opportunity{
		{JobTitle: "Intern"},
		{CompanyName: "Acme"},
		{CompanyName: "  ", JobTitle: "Intern"},
	} {
		if err := op.Validate(); err == nil {
			t.Fatalf("Validate(%+v) should fail", op)
		}
	}
}

func TestRenderersArePure(t *testing.T) {
	t.Parallel()
	if GroupChatText(fullOp, 42) != GroupChatText(fullOp, 42) {
		t.Fatal("GroupChatText not deterministic")
	}
	if PersonalChatText(fullOp, "Jane") != PersonalChatText(fullOp, "Jane") {
		t.Fatal("PersonalChatText not deterministic")
	}
	e1, err1 := Email(fullOp, "Jane")
	e2, err2 := Email(fullOp, "Jane")
	if err1 != nil || err2 != nil {
		t.Fatalf("Email: %v / %v", err1, err2)
	}
	if e1 != e2 {
		t.Fatal("Email not deterministic")
	}
}

func TestGroupChatTextOptionalFields(t *testing.T) {
	t.Parallel()
	op := Opportunity{CompanyName: "Acme", JobTitle: "Intern", Stipend: "5k"}
	got := GroupChatText(op, 2)

	for _, want := range []string{
		"**Company:** Acme",
		"**Job Title:** Intern",
		"**Stipend:** 5k",
		"**Total Students Notified:** 2",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
	for _, absent := range []string{"CTC", "Eligibility", "Registration Link", "Additional Notes", "Hello"} {
		if strings.Contains(got, absent) {
			t.Fatalf("unexpected %q in:\n%s", absent, got)
		}
	}
}

func TestGroupChatTextFieldOrder(t *testing.T) {
	t.Parallel()
	got := GroupChatText(fullOp, 10)
	order := []string{
		"**Company:**", "**Job Title:**",
		"**UG CTC:**", "**PG CTC:**", "**Stipend:**",
		"**Eligibility:**", "**Registration Link:**", "**Additional Notes:**",
		"**Total Students Notified:**",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(got, marker)
		if idx < 0 {
			t.Fatalf("missing %q", marker)
		}
		if idx < last {
			t.Fatalf("%q out of order", marker)
		}
		last = idx
	}
}

func TestPersonalChatTextGreeting(t *testing.T) {
	t.Parallel()
	got := PersonalChatText(fullOp, "John Doe")
	if !strings.HasPrefix(got, "Hello John Doe,\n\n") {
		t.Fatalf("missing greeting:\n%s", got)
	}
	if strings.Contains(got, "Total Students Notified") {
		t.Fatal("personal variant must not carry the group footer")
	}
}

func TestEmailRendering(t *testing.T) {
	t.Parallel()
	got, err := Email(fullOp, "Jane")
	if err != nil {
		t.Fatalf("Email: %v", err)
	}
	if got.Subject != "New Placement Opportunity - Tech Solutions Inc." {
		t.Fatalf("subject = %q", got.Subject)
	}
	for _, want := range []string{
		"Hello Jane!",
		"Summer Internship Drive",
		"<strong>Company:</strong> Tech Solutions Inc.",
		"<strong>Job Title:</strong> Software Developer Intern",
		`<a href="https://example.com/register"`,
		"Click here to register",
		"Placement Cell - KLU",
	} {
		if !strings.Contains(got.HTMLBody, want) {
			t.Fatalf("missing %q in body", want)
		}
	}
}

func TestEmailMinimalOpportunity(t *testing.T) {
	t.Parallel()
	op := Opportunity{Title: "Drive", CompanyName: "Acme", JobTitle: "Intern"}
	got, err := Email(op, "Jane")
	if err != nil {
		t.Fatalf("Email: %v", err)
	}
	for _, absent := range []string{"CTC", "Stipend", "Eligibility", "Registration Link", "Additional Notes"} {
		if strings.Contains(got.HTMLBody, absent) {
			t.Fatalf("minimal opportunity should omit %q", absent)
		}
	}
	if !strings.Contains(got.HTMLBody, "<strong>Company:</strong> Acme") {
		t.Fatal("minimal body must keep required fields")
	}
}

func TestEmailEscapesHTML(t *testing.T) {
	t.Parallel()
	op := Opportunity{CompanyName: "A<b>cme", JobTitle: "Intern"}
	got, err := Email(op, "<script>")
	if err != nil {
		t.Fatalf("Email: %v", err)
	}
	if strings.Contains(got.HTMLBody, "<script>") || strings.Contains(got.HTMLBody, "A<b>cme") {
		t.Fatal("user input must be escaped in HTML body")
	}
}
