package domain

// MailingList is a provider-side collection of subscribers, as returned by the provider.
type MailingList struct {
	Address     string `json:"address"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description"`
	MemberCount int    `json:"members_count"`
}

// ListMember is one subscriber's relationship to one list.
// A member record can exist while Subscribed is false.
type ListMember struct {
	Address    string         `json:"address"`
	Name       string         `json:"name"`
	Subscribed bool           `json:"subscribed"`
	Attributes map[string]any `json:"vars,omitempty"`
}

// Paging holds the provider's page links. Only the first page is ever read.
type Paging struct {
	First    string `json:"first"`
	Last     string `json:"last"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// IsSubscriber reports whether the member record is an active subscription of identifier.
func (m ListMember) IsSubscriber(identifier string) bool {
	return m.Subscribed && m.Address == identifier
}

func ListAddresses(lists []MailingList) []string {
	addresses := make([]string, 0, len(lists))
	for _, list := range lists {
		addresses = append(addresses, list.Address)
	}
	return addresses
}
