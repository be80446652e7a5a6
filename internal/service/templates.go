package service

import (
	"fmt"
	"html"
	"strings"

	"github.com/est-ai/checkout-service/internal/mail"
)

// courseAccess holds the course-specific content of the confirmation email.
type courseAccess struct {
	Inclusions []string
	NextSteps  []string
}

var accessByCourse = map[string]courseAccess{
	"ai-fundamentals-self-paced": {
		Inclusions: []string{
			"8 self-paced video modules",
			"Hands-on prompt engineering exercises",
			"Downloadable prompt library and templates",
			"Private community access",
			"Certificate of completion",
		},
		NextSteps: []string{
			"Create your account using this email address",
			"Log in to the learning portal",
			"Start with Module 1: Foundations of AI",
		},
	},
	"ai-fundamentals-cohort": {
		Inclusions: []string{
			"Everything in the self-paced course",
			"6 weeks of live instructor-led sessions",
			"Weekly office hours with your cohort",
			"Graded capstone project with feedback",
		},
		NextSteps: []string{
			"Create your account using this email address",
			"Watch for your cohort's calendar invite",
			"Introduce yourself in the cohort channel",
		},
	},
	"business-leaders-executive": {
		Inclusions: []string{
			"4 executive workshop sessions",
			"AI opportunity assessment for your organization",
			"1:1 strategy session with an instructor",
			"Implementation roadmap template",
		},
		NextSteps: []string{
			"Our team will contact you within one business day",
			"Complete the pre-workshop questionnaire",
			"Book your 1:1 strategy session",
		},
	},
	"business-leaders-team": {
		Inclusions: []string{
			"Executive cohort access for up to 5 team members",
			"Private team workshop sessions",
			"Shared implementation roadmap",
			"Quarterly follow-up review",
		},
		NextSteps: []string{
			"Our team will contact you within one business day",
			"Send us the names and emails of your team members",
			"Schedule your team kickoff session",
		},
	},
}

var genericAccess = courseAccess{
	Inclusions: []string{
		"Full access to your purchased course",
	},
	NextSteps: []string{
		"Check your email for access instructions",
		"Contact support if nothing arrives within one business day",
	},
}

// accessFor returns the access instructions for the course, falling back to
// a generic template when the id is unrecognized. The id made a round trip
// through the payment provider, so unknown values are tolerated rather than
// treated as errors.
func accessFor(courseID string) courseAccess {
	if access, ok := accessByCourse[courseID]; ok {
		return access
	}
	return genericAccess
}

func buildConfirmation(session *CompletedSession, access courseAccess) *mail.Message {
	name := session.CustomerName
	if name == "" {
		name = "there"
	}
	amount := formatAmount(session.AmountTotal, session.Currency)
	courseName := session.CourseName
	if courseName == "" {
		courseName = "your course"
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\n", name)
	fmt.Fprintf(&text, "Thank you for your purchase! Your payment of %s for %s has been received.\n\n", amount, courseName)
	text.WriteString("Your course includes:\n")
	for _, item := range access.Inclusions {
		fmt.Fprintf(&text, "  - %s\n", item)
	}
	text.WriteString("\nNext steps:\n")
	for i, step := range access.NextSteps {
		fmt.Fprintf(&text, "  %d. %s\n", i+1, step)
	}
	text.WriteString("\nSee you inside,\nThe EST AI Consulting Team\n")

	var htmlBody strings.Builder
	fmt.Fprintf(&htmlBody, "<p>Hi %s,</p>", html.EscapeString(name))
	fmt.Fprintf(&htmlBody, "<p>Thank you for your purchase! Your payment of <strong>%s</strong> for <strong>%s</strong> has been received.</p>",
		html.EscapeString(amount), html.EscapeString(courseName))
	htmlBody.WriteString("<p>Your course includes:</p><ul>")
	for _, item := range access.Inclusions {
		fmt.Fprintf(&htmlBody, "<li>%s</li>", html.EscapeString(item))
	}
	htmlBody.WriteString("</ul><p>Next steps:</p><ol>")
	for _, step := range access.NextSteps {
		fmt.Fprintf(&htmlBody, "<li>%s</li>", html.EscapeString(step))
	}
	htmlBody.WriteString("</ol><p>See you inside,<br>The EST AI Consulting Team</p>")

	return &mail.Message{
		ToAddress: session.CustomerEmail,
		ToName:    session.CustomerName,
		Subject:   fmt.Sprintf("Your enrollment confirmation - %s", courseName),
		PlainText: text.String(),
		HTML:      htmlBody.String(),
	}
}

// formatAmount renders a minor-unit amount like 49700 as "497.00 USD".
func formatAmount(minorUnits int64, currency string) string {
	cur := strings.ToUpper(currency)
	if cur == "" {
		cur = "USD"
	}
	return fmt.Sprintf("%d.%02d %s", minorUnits/100, minorUnits%100, cur)
}
