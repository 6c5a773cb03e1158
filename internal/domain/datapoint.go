package domain

import "slices"

// ContextDictionary is produced by access and consumed by erasure.
type ContextDictionary struct {
	SubscribedMailingLists []string `json:"subscribedMailingLists"`
}

// SeedInput is a caller-supplied identifier/list pair to add.
type SeedInput struct {
	Identifier  string `json:"identifier" binding:"required,email" validate:"required,email"`
	MailingList string `json:"mailingList" binding:"required" validate:"required"`
}

// AccessResult holds the lists an identifier is subscribed to, both as the visible
// payload and as the context for a later erasure.
type AccessResult struct {
	Data        []string          `json:"data"`
	ContextDict ContextDictionary `json:"contextDict"`
}

// NewAccessResult builds both views from the same resolved address set.
// The context gets its own copy so neither view can alias the other.
func NewAccessResult(subscribed []string) *AccessResult {
	if subscribed == nil {
		subscribed = []string{}
	}
	return &AccessResult{
		Data: subscribed,
		ContextDict: ContextDictionary{
			SubscribedMailingLists: slices.Clone(subscribed),
		},
	}
}

// Lists returns the addresses to erase from; a nil dictionary has none.
func (d *ContextDictionary) Lists() []string {
	if d == nil {
		return nil
	}
	return d.SubscribedMailingLists
}
