package mailgun

import (
	"bytes"
	"encoding/json"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
)

// MailingListsResponse is one page of GET /lists/pages.
type MailingListsResponse struct {
	Items  []domain.MailingList `json:"items"`
	Paging domain.Paging        `json:"paging"`
}

// ListMembersResponse is one page of GET /lists/{address}/members/pages.
type ListMembersResponse struct {
	Items  []domain.ListMember `json:"items"`
	Paging domain.Paging       `json:"paging"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// page keeps items raw so a non-array field can be reported instead of silently decoded.
type page struct {
	Items  json.RawMessage `json:"items"`
	Paging domain.Paging   `json:"paging"`
}

func decodePage[T any](body []byte) ([]T, domain.Paging, error) {
	var p page
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, domain.Paging{}, &ResponseError{Reason: "invalid json", Payload: body}
	}

	raw := bytes.TrimSpace(p.Items)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, domain.Paging{}, &ResponseError{Reason: "items is not a list", Payload: body}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, domain.Paging{}, &ResponseError{Reason: "invalid items", Payload: body}
	}

	return items, p.Paging, nil
}
