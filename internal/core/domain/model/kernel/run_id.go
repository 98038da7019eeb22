package kernel

import (
	"fmt"

	"github.com/daechan-jo/auto-store-services-order/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrRunIDIsNotConstructed indicates that a RunID was not created through one
// of the constructor functions. It is returned when validating a zero-value RunID.
var ErrRunIDIsNotConstructed = errs.NewValueIsRequiredError(
	"RunID must be created via NewRunID or RunIDFromString")

// RunID is a value object identifying a single orchestration run. It wraps
// github.com/google/uuid and is generated once per scheduler tick, then
// threaded through every outbound message and log line of that run as the
// correlation token.
//
// The zero value of RunID is invalid and must be constructed using NewRunID
// or RunIDFromString.
type RunID struct {
	id uuid.UUID
}

// NewRunID generates a new random run identifier (UUID version 4).
// Called exactly once at the start of each scheduled invocation.
func NewRunID() RunID {
	return RunID{id: uuid.New()}
}

// RunIDFromString parses a RunID from its string representation.
// Used when reconstructing run correlation from inbound messages.
func RunIDFromString(s string) (RunID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RunID{}, fmt.Errorf("invalid run ID format: %w", err)
	}
	return RunID{id: id}, nil
}

// String returns the standard UUID string representation of the run id.
func (r RunID) String() string {
	return r.id.String()
}

// IsEqual compares two RunIDs for equality.
func (r RunID) IsEqual(other RunID) bool {
	return r.id == other.id
}

// Validate returns ErrRunIDIsNotConstructed if the RunID is a zero value.
func (r RunID) Validate() error {
	if r.id == uuid.Nil {
		return ErrRunIDIsNotConstructed
	}
	return nil
}
