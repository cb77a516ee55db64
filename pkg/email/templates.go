package email

import (
	"fmt"
)

// ResultEmailData contains the data needed for the diagnosis result email.
type ResultEmailData struct {
	Email      string
	MBTIType   string
	Confidence int
	AppName    string
	BaseURL    string
}

// BuildResultEmail creates the notification message sent when a diagnosis
// session completes.
func BuildResultEmail(data ResultEmailData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "Kokoro"
	}

	subject := fmt.Sprintf("Your %s personality result: %s", appName, data.MBTIType)

	resultURL := data.BaseURL
	if resultURL != "" {
		resultURL += "/mbti/result"
	}

	textBody := fmt.Sprintf(`Hi,

Your personality diagnosis is complete.

Type: %s
Confidence: %d%%

See your full result and recommended chat partners here:
%s

Thanks,
The %s Team`,
		data.MBTIType, data.Confidence, resultURL, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Your diagnosis is complete</h2>
    <p>Your personality type:</p>
    <p style="text-align: center; margin: 30px 0; font-size: 32px; font-weight: bold; letter-spacing: 4px;">%s</p>
    <p>Confidence: %d%%</p>
    <p style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View your result</a>
    </p>
    <p>Thanks,<br>The %s Team</p>
</body>
</html>`,
		data.MBTIType, data.Confidence, resultURL, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
