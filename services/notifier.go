package services

import "github.com/Dosada05/football-api/events"

const (
	ResourceLeague = "liga"
	ResourceClub   = "klub"
	ResourcePlayer = "pemain"
	ResourceFan    = "fans"
)

// ChangeNotifier is told about every successful write. *events.Hub
// implements it.
type ChangeNotifier interface {
	Publish(resource, action string, payload interface{})
}

type noopNotifier struct{}

func (noopNotifier) Publish(string, string, interface{}) {}

func notifierOrNoop(n ChangeNotifier) ChangeNotifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

type deletedPayload struct {
	ID int `json:"id"`
}

var _ ChangeNotifier = (*events.Hub)(nil)
