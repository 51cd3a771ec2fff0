package stripe

import (
	"net/url"
	"strconv"

	"github.com/preslavrachev/stripetable/core"
)

// pushdownSingleID recognizes the one case where a collection scan collapses
// into a single-object GET: exactly one non-disjunctive equality qual on the
// id field with a string value. Returns nil when the shortcut does not apply.
func pushdownSingleID(base *url.URL, quals []core.Qual) *url.URL {
	if len(quals) != 1 {
		return nil
	}
	qual := quals[0]
	if qual.Field != core.IDField || !qual.Pushdownable() {
		return nil
	}
	if qual.Value.Kind != core.CellString {
		return nil
	}
	return base.JoinPath(qual.Value.Str)
}

// pushdownQuals appends eligible equality quals as query parameters. Quals
// with other operators, disjunctive quals and quals on fields the upstream
// API does not filter by are dropped; dropping only widens the result set,
// the caller re-filters delivered rows.
func pushdownQuals(u *url.URL, quals []core.Qual, fields []string) {
	params := u.Query()
	for _, qual := range quals {
		if !qual.Pushdownable() {
			continue
		}
		for _, field := range fields {
			if qual.Field != field {
				continue
			}
			switch qual.Value.Kind {
			case core.CellBool:
				params.Set(field, strconv.FormatBool(qual.Value.Bool))
			case core.CellString:
				params.Set(field, qual.Value.Str)
			}
		}
	}
	u.RawQuery = params.Encode()
}

// buildURL produces the request URL for one page fetch against a resource.
// The single-id shortcut takes priority over generic pushdown for resources
// that support direct lookup. Singleton resources receive no pagination
// parameters.
func buildURL(base *url.URL, resource *core.Resource, quals []core.Qual, pageSize int64, cursor string) *url.URL {
	u := base.JoinPath(resource.Name)

	if resource.DirectLookup {
		if single := pushdownSingleID(u, quals); single != nil {
			return single
		}
	}

	pushdownQuals(u, quals, resource.PushdownFields)

	if !resource.Singleton {
		params := u.Query()
		params.Set("limit", strconv.FormatInt(pageSize, 10))
		if cursor != "" {
			params.Set("starting_after", cursor)
		}
		u.RawQuery = params.Encode()
	}

	return u
}
