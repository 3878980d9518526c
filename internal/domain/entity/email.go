package entity

// EmailMessage is a plain-text message handed to the mail sender.
type EmailMessage struct {
	FromName    string
	FromAddress string
	To          string
	Subject     string
	Body        string
}
