package entry

import (
	"errors"
	"net/http"

	"pdb-explorer/internal/domain/entity"
	"pdb-explorer/internal/handler/http/respond"
)

// Error kinds reported in the "kind" field of error responses.
const (
	KindInvalidIdentifier  = "invalid_identifier_format"
	KindEntryNotFound      = "entry_not_found"
	KindRemoteService      = "remote_service_error"
	KindNetworkUnreachable = "network_unreachable"
)

// toAppError maps a lookup error to its HTTP answer:
//
//	invalid identifier  400
//	entry not found     404
//	remote service      502
//	network unreachable 503
//
// Anything else is returned unchanged and ends up as a generic 500.
func toAppError(err error) error {
	msg := entity.UserMessage(err)
	switch {
	case errors.Is(err, entity.ErrInvalidIdentifierFormat):
		return respond.NewAppError(http.StatusBadRequest, KindInvalidIdentifier, msg, err)
	case errors.Is(err, entity.ErrEntryNotFound):
		return respond.NewAppError(http.StatusNotFound, KindEntryNotFound, msg, err)
	case errors.Is(err, entity.ErrNetworkUnreachable):
		return respond.NewAppError(http.StatusServiceUnavailable, KindNetworkUnreachable, msg, err)
	case errors.Is(err, entity.ErrRemoteService):
		return respond.NewAppError(http.StatusBadGateway, KindRemoteService, msg, err)
	default:
		return err
	}
}
