package interfaces

// EventPublisher pushes engine events to an external broker. The ledger treats
// a nil publisher as "events disabled".
type EventPublisher interface {
	Publish(topic string, event any) error
}
