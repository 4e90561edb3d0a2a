package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	DealNotFound        failure.ErrorCode = "DealNotFound"
	DealNotDraft        failure.ErrorCode = "DealNotDraft"
	InvalidCandidate    failure.ErrorCode = "InvalidCandidate"
	InvalidDealType     failure.ErrorCode = "InvalidDealType"
	InvalidStore        failure.ErrorCode = "InvalidStore"
	SourceFetchFailure  failure.ErrorCode = "SourceFetchFailure"
	PersistenceFailure  failure.ErrorCode = "PersistenceFailure"
	NotificationFailure failure.ErrorCode = "NotificationFailure"

	SubscriberNotFound      failure.ErrorCode = "SubscriberNotFound"
	SubscriberAlreadyExists failure.ErrorCode = "SubscriberAlreadyExists"
	InvalidEmail            failure.ErrorCode = "InvalidEmail"
)
