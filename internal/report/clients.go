package report

import (
	"strings"

	"servicios/internal/core"
)

// ClientSummary aggregates one client's services.
type ClientSummary struct {
	ClientID      string
	Name          string
	Phone         string
	Services      []core.Service
	TotalServices int
	TotalAmount   core.Money
}

// LastService returns the most recent service date, if any.
func (c ClientSummary) LastService() (core.Date, bool) {
	var last core.Date
	for _, s := range c.Services {
		if last.IsZero() || s.Date.After(last.Time) {
			last = s.Date
		}
	}
	return last, !last.IsZero()
}

type ClientRollup struct {
	Clients       []ClientSummary
	TotalServices int
	TotalAmount   core.Money
}

// Rollup groups services by client in first-encounter order. Name and phone
// come from the first record seen. Known clients without services are
// appended with zero totals.
func Rollup(services []core.Service, known []core.Client) ClientRollup {
	var r ClientRollup
	index := make(map[string]int)
	for _, s := range services {
		i, ok := index[s.ClientID]
		if !ok {
			i = len(r.Clients)
			index[s.ClientID] = i
			r.Clients = append(r.Clients, ClientSummary{
				ClientID: s.ClientID,
				Name:     s.ClientName,
				Phone:    s.ClientPhone,
			})
		}
		c := &r.Clients[i]
		c.Services = append(c.Services, s)
		c.TotalServices++
		c.TotalAmount = c.TotalAmount.Add(s.Amount)

		r.TotalServices++
		r.TotalAmount = r.TotalAmount.Add(s.Amount)
	}
	for _, k := range known {
		if _, ok := index[k.ID]; ok {
			continue
		}
		index[k.ID] = len(r.Clients)
		r.Clients = append(r.Clients, ClientSummary{ClientID: k.ID, Name: k.Name, Phone: k.Phone})
	}
	return r
}

// Find returns the summary for clientID.
func (r ClientRollup) Find(clientID string) (ClientSummary, bool) {
	for _, c := range r.Clients {
		if c.ClientID == clientID {
			return c, true
		}
	}
	return ClientSummary{}, false
}

// FilterByName keeps clients whose name contains term, ignoring case.
// An empty term keeps everything.
func FilterByName(clients []ClientSummary, term string) []ClientSummary {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return clients
	}
	out := make([]ClientSummary, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), term) {
			out = append(out, c)
		}
	}
	return out
}
