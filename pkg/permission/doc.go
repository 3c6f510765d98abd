// Package permission provides parsing, validation and wildcard matching for
// dot-separated permission tokens used in authorization systems.
//
// A permission token is a hierarchical string such as "docs.view" or
// "reports.finance.export". Each dot-separated segment is an identifier
// ([A-Za-z0-9_]+). The final segment may instead be the wildcard "*", which
// grants every permission below the prefix, and the bare token "*" grants
// everything.
//
// Tokens are validated once, at configuration time; matching assumes
// pre-validated tokens and is a pure function over an immutable granted set,
// so it is safe to share across concurrent checks without locking.
//
// Basic usage:
//
//	granted := permission.NewSet(
//	    permission.MustParse("docs.*"),
//	    permission.MustParse("reports.view"),
//	)
//
//	requested, err := permission.Parse("docs.edit.draft")
//	if err != nil {
//	    // Handle malformed token
//	}
//
//	ok, err := permission.IsGranted(granted, requested)
//	// ok == true: "docs.*" covers "docs.edit.draft"
//
// Matching rules, most specific first:
//
//   - Exact match: "docs.view" grants "docs.view"
//   - Global wildcard: "*" grants any permission
//   - Prefix wildcard: "docs.*" grants "docs.view" and "docs.edit.draft",
//     but not the bare "docs" and not "other.view"
//
// The requested token of a check must always be concrete. Asking whether a
// wildcard is granted is a programming error at the call site and fails with
// ErrInvalidRequest.
package permission
