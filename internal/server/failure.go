package server

import (
	"git.appkode.ru/pub/go/failure"

	"tooldeals/internal/domain"
	"tooldeals/pkg/errcodes"
)

// asFailure lifts domain errors into the failure classes that reply.Error
// maps onto HTTP statuses. Unclassified errors fall through as 500s.
func asFailure(err error) error {
	if err == nil {
		return nil
	}

	code, ok := domain.GetCode(err)
	if !ok {
		return err
	}

	switch code {
	case errcodes.DealNotFound, errcodes.SubscriberNotFound, errcodes.NotFound:
		return failure.NewNotFoundErrorFromError(err, failure.WithCode(code))
	case errcodes.SubscriberAlreadyExists:
		return failure.NewConflictErrorFromError(err, failure.WithCode(code))
	case errcodes.DealNotDraft:
		return failure.NewUnprocessableEntityErrorFromError(err, failure.WithCode(code))
	case errcodes.ValidationError, errcodes.InvalidCandidate,
		errcodes.InvalidDealType, errcodes.InvalidStore, errcodes.InvalidEmail:
		return failure.NewInvalidArgumentErrorFromError(err, failure.WithCode(code))
	default:
		return err
	}
}
