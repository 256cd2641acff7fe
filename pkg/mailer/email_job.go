package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Finverse only sends plain notification mail (e.g. the registration
// welcome), so a job is just recipient, subject, and text body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// WelcomeJob builds the greeting sent after a successful registration.
func WelcomeJob(to, name string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to Finverse",
		Text: "Hi " + name + ",\n\n" +
			"Your Finverse account is ready. Track budgets, plan investments, " +
			"and ask the assistant anything about your finances.\n\n" +
			"— The Finverse team",
	}
}
