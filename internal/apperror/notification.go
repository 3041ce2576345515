package apperror

import "errors"

const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Notification is a user-visible toast produced by a failed guard, a collaborator
// error or a notable success.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// NotificationFor turns err into the toast shown to the user.
func NotificationFor(err error) Notification {
	var e *Error
	if errors.As(err, &e) {
		return Notification{Title: e.Title, Description: e.Message, Variant: VariantDestructive}
	}
	return Notification{Title: "Error", Description: Message(err), Variant: VariantDestructive}
}

func Info(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}
