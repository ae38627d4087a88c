package email

import "fmt"

// Minimal inline templates. The site renders everything else; mail is
// plain notification text.

func WelcomeBody(emailAddr string) (subject, body string) {
	subject = "Welcome to Planr"
	body = fmt.Sprintf(
		"<p>Hello %s,</p><p>Your Planr account has been created. "+
			"You can now sign in and ask the planning assistant about Dublin City Council planning queries.</p>",
		emailAddr,
	)
	return subject, body
}

func ReceiptBody(amount string, validUntil string) (subject, body string) {
	subject = "Your Planr premium subscription"
	body = fmt.Sprintf(
		"<p>Thank you for subscribing to Planr premium.</p>"+
			"<p>Amount charged: %s<br>Premium access until: %s</p>",
		amount, validUntil,
	)
	return subject, body
}
