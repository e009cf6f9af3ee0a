// Package models defines the data types shared between the storage,
// service, and transport layers of storefront-api: persisted documents,
// typed resource views, pagination envelopes, and token/identity types.
package models

// Well-known document fields managed exclusively by the resource engine.
// Caller-supplied values for these keys are discarded before persistence.
const (
	FieldID        = "_id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Document is the schemaless record representation used by the document
// store and the generic resource engine. Every persisted document carries
// FieldID (store-assigned, immutable), FieldCreatedAt, and FieldUpdatedAt.
type Document map[string]any

// ID returns the store-assigned identifier of the document, or an empty
// string if the document has not been persisted yet.
func (d Document) ID() string {
	id, _ := d[FieldID].(string)
	return id
}

// Clone returns a shallow copy of the document. Top-level keys can be
// added or removed on the copy without mutating the original; nested
// values are shared.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	clone := make(Document, len(d))
	for k, v := range d {
		clone[k] = v
	}
	return clone
}

// Entity identifies a persisted resource collection. It is the adapter
// contract that lets the generic resource engine operate on a concrete
// resource type without per-resource duplication: each model implements
// Collection and the engine is written once against this interface.
type Entity interface {
	// Collection returns the name of the store collection holding
	// documents of this resource type.
	Collection() string
}
