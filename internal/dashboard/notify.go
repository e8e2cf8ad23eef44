package dashboard

import "log"

// Notifier shows transient messages to the user.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

type LogNotifier struct{}

func (LogNotifier) Info(msg string)  { log.Printf("info: %s", msg) }
func (LogNotifier) Error(msg string) { log.Printf("error: %s", msg) }

// errorMessage prefers the server's {error} text.
func errorMessage(fallback string, err error) string {
	if msg := apiMessage(err); msg != "" {
		return fallback + ": " + msg
	}
	return fallback
}
