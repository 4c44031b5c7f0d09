package enum

type EntityType string

const (
	ATTACHMENT EntityType = "ATTACHMENT"
	INBOX      EntityType = "INBOX"
	THREAD     EntityType = "THREAD"
	MESSAGE    EntityType = "MESSAGE"
)

func (entityType EntityType) String() string {
	return string(entityType)
}
