package routing

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// memRegistry is an in memory Registry for tests
type memRegistry struct {
	mu      sync.Mutex
	records map[string]DomainRecord
	err     error
	exact   []string
	byTLD   []string
}

func newMem(recs ...DomainRecord) *memRegistry {
	m := &memRegistry{records: map[string]DomainRecord{}}
	for _, r := range recs {
		m.records[r.Name] = r
	}
	return m
}

func (m *memRegistry) LookupByExactName(_ context.Context, name string) (DomainRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exact = append(m.exact, name)
	if m.err != nil {
		return DomainRecord{}, false, m.err
	}
	r, ok := m.records[name]
	return r, ok, nil
}

func (m *memRegistry) LookupByTLD(_ context.Context, tld string) (DomainRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byTLD = append(m.byTLD, tld)
	if m.err != nil {
		return DomainRecord{}, false, m.err
	}
	names := make([]string, 0, len(m.records))
	for n := range m.records {
		if strings.HasSuffix(n, "."+tld) {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return DomainRecord{}, false, nil
	}
	sort.Strings(names)
	return m.records[names[0]], true, nil
}

// healthy returns an active, verified record with an active root page
func healthy(name string) DomainRecord {
	return DomainRecord{
		Name:               name,
		IsActive:           true,
		VerificationStatus: VerificationActive,
		HasRootPage:        true,
		RootPageActive:     true,
	}
}
