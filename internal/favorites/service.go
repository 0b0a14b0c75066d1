// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package favorites

import (
	"context"
	"log/slog"

	"github.com/byfest/byfest/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the saved-event list for anonymous visitors.
//
// It also satisfies the events domain's SavedLookup contract, which is how
// the catalog's favorites quick filter reaches the same data.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Save adds an event to the visitor's saved list.
func (service *Service) Save(context context.Context, visitorID, eventID string) error {
	if err := validateIDs(visitorID, eventID); err != nil {
		return err
	}
	return service.store.Add(context, visitorID, eventID)
}

// Unsave removes an event from the visitor's saved list.
func (service *Service) Unsave(context context.Context, visitorID, eventID string) error {
	if err := validateIDs(visitorID, eventID); err != nil {
		return err
	}
	return service.store.Remove(context, visitorID, eventID)
}

// List returns the visitor's saved event ids.
func (service *Service) List(context context.Context, visitorID string) ([]string, error) {
	if visitorID == "" {
		return nil, validate.RequiredError("visitor_id", "This field is required")
	}
	return service.store.Members(context, visitorID)
}

/*
SavedSet returns the visitor's saved event ids as a membership set.

Description: This is the read the events service performs once per catalog
request; the predicate engine then checks membership in memory. An empty
visitor id yields an empty set rather than an error, because an anonymous
visitor simply has nothing saved.

Parameters:
  - context: context.Context
  - visitorID: string

Returns:
  - map[string]struct{}: Saved event ids
  - error: Cache read failures
*/
func (service *Service) SavedSet(context context.Context, visitorID string) (map[string]struct{}, error) {
	if visitorID == "" {
		return map[string]struct{}{}, nil
	}

	members, err := service.store.Members(context, visitorID)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(members))
	for _, id := range members {
		set[id] = struct{}{}
	}
	return set, nil
}

// validateIDs checks the two identifiers every mutation needs.
func validateIDs(visitorID, eventID string) error {
	validator := &validate.Validator{}
	validator.Required("visitor_id", visitorID)
	validator.Required("event_id", eventID).UUID("event_id", eventID)
	return validator.Err()
}
