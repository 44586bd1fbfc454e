package access

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNoWellAccess = errors.New("no access to this well")

// AuthorizeLayerWrite rejects attaching a layer to a well the caller does not
// own. Superusers are held to the same rule: visibility is elevated for them,
// layer authorship is not.
func AuthorizeLayerWrite(id Identity, wellOwnerID uuid.UUID) error {
	if id.UserID != wellOwnerID {
		return ErrNoWellAccess
	}
	return nil
}
