package service

const (
	EventMaterialCreated = "material_created"
	EventMaterialUpdated = "material_updated"
	EventMaterialDeleted = "material_deleted"
	EventCategoryCreated = "category_created"
	EventCategoryDeleted = "category_deleted"
)

// EventPublisher fans inventory changes out to live clients. Implementations
// must not block the caller.
type EventPublisher interface {
	Publish(eventType string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
