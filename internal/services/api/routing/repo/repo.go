// Package repo is the postgres Domain Registry
package repo

import (
	"context"

	"landingrouter/internal/core/routing"
	"landingrouter/internal/modkit/repokit"
	perr "landingrouter/internal/platform/errors"
)

// Repo is the registry contract the resolver consumes
type Repo = routing.Registry

type (
	// PG binds the registry to a Queryer
	PG struct{}
	// queries implements Repo
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the postgres registry
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// root page state folds into two booleans so the resolver never sees nulls
const selectDomain = `
select d.name, d.is_active, d.verification_status, d.redirect_www_to_non_www,
       rp.id is not null, coalesce(rp.is_active, false)
from domains d
left join root_pages rp on rp.domain_id = d.id
`

func (r *queries) LookupByExactName(ctx context.Context, name string) (routing.DomainRecord, bool, error) {
	return r.one(ctx, "by_name", selectDomain+`where d.name = $1`, name)
}

// LookupByTLD breaks ties by name so the same TLD always lands on the same domain
func (r *queries) LookupByTLD(ctx context.Context, tld string) (routing.DomainRecord, bool, error) {
	return r.one(ctx, "by_tld", selectDomain+`where d.tld = $1 order by d.name limit 1`, tld)
}

func (r *queries) one(ctx context.Context, op, sql, arg string) (routing.DomainRecord, bool, error) {
	var (
		rec    routing.DomainRecord
		status string
	)
	err := r.q.QueryRow(ctx, sql, arg).Scan(
		&rec.Name, &rec.IsActive, &status, &rec.RedirectWWWToNonWWW,
		&rec.HasRootPage, &rec.RootPageActive,
	)
	if repokit.IsNoRows(err) {
		return routing.DomainRecord{}, false, nil
	}
	if err != nil {
		return routing.DomainRecord{}, false, perr.WithOp(perr.FromPostgres(err, "domain registry lookup"), "registry.lookup_"+op)
	}
	rec.VerificationStatus = routing.VerificationStatus(status)
	return rec, true, nil
}
