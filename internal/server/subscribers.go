package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"tooldeals/pkg/httpx/reply"
	"tooldeals/pkg/httpx/req"
	"tooldeals/pkg/rest"
)

type subscriberRepository interface {
	Add(ctx context.Context, email string) error
	Remove(ctx context.Context, email string) error
}

type SubscriberServer struct {
	subscribers subscriberRepository
}

func NewSubscriberServer(subscribers subscriberRepository) SubscriberServer {
	return SubscriberServer{subscribers: subscribers}
}

func (s SubscriberServer) postV1Subscribers(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.Subscriber
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.subscribers.Add(ctx, request.Email); err != nil {
		return asFailure(err)
	}

	reply.Created(w)

	return nil
}

func (s SubscriberServer) deleteV1Subscriber(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		return fmt.Errorf("url.PathUnescape: %w", err)
	}

	if err := s.subscribers.Remove(ctx, email); err != nil {
		return asFailure(err)
	}

	reply.OK(w)

	return nil
}
