package core

import (
	"bytes"
	"net/mail"
	texttmpl "text/template"
)

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string
		TemplateData interface{}
		TextContent  string
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// Render executes the message's template (if any) into TextContent.
func (msg *EmailMessage) Render() error {
	if msg.TemplateName == "" {
		msg.TextContent = msg.BodyStr
		return nil
	}
	tmpl, ok := emailTemplates[msg.TemplateName]
	if !ok {
		return NewShutdownError("unknown email template: " + msg.TemplateName)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, msg.TemplateData); err != nil {
		return err
	}
	msg.TextContent = buf.String()
	return nil
}

func (msg *EmailMessage) HasRecipients() bool {
	return (len(msg.To) + len(msg.Cc)) > 0
}

func (msg *EmailMessage) HasContent() bool {
	return msg.BodyStr != "" || msg.TextContent != ""
}

// Email templates

const GroupInvitationTemplate = "group-invitation"

var emailTemplates = map[string]*texttmpl.Template{
	GroupInvitationTemplate: texttmpl.Must(texttmpl.New(GroupInvitationTemplate).Parse(`Hello {{ .SupervisorName }},

You have been assigned as the supervisor of the new graduation-project group
"{{ .GroupName }}" in your department.

Please sign in to the dashboard to review the group and its project proposal.
`)),
}
