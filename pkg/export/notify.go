package export

import "fmt"

// Kind of a user-facing notification
type Kind int

const (
	KindInfo Kind = iota
	KindLoading
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Messages shown to the user
const (
	MsgIncomplete = "Please select a player, team, and enter price first"
	MsgGenerating = "Generating your post..."
	MsgSuccess    = "Post downloaded successfully!"
	MsgFailure    = "Failed to generate post. Please try again."
	MsgReset      = "Form reset successfully"
)

// Notification is one toast. A non-empty Key replaces any earlier
// notification with the same key instead of stacking.
type Notification struct {
	Kind    Kind
	Message string
	Key     string
}

// Notifier receives notifications
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Discard drops every notification
var Discard Notifier = NotifierFunc(func(Notification) {})
