package model

type MailRecipient struct {
	DisplayName string
	Address     string
}

type MailMessage struct {
	Recipients []MailRecipient
	Subject    string
	Body       string
}

type ConfirmEmailTemplateData struct {
	Username  string
	Link      string
	ExpiresIn int64
}
