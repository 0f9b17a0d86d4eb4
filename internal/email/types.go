package email

// Address is a mailbox with an optional display name.
type Address struct {
	Email string
	Name  string
}

type Email struct {
	From     Address
	To       []Address
	ReplyTo  string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is passed to html/template.
type TemplateData map[string]interface{}
