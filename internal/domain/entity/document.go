package entity

import (
	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
)

// Document is the common surface of the flowing document aggregates,
// used by the status transition engine to treat all types uniformly.
type Document interface {
	GetID() uuid.UUID
	GetDocumentNo() string
	GetStatus() string
	GetDocumentType() enum.DocumentType
}
