// Package preflight checks that a book can be used before the shell or a
// write command touches it.
//
// The package validates:
//   - The book file parses (or is absent and will be created)
//   - The book directory is writable
//   - Free disk space in the book directory
//   - Whether another process holds the book's write lock
//
// Use the Checker type to run all validations:
//
//	checker := preflight.New()
//	results := checker.RunAll(ctx, "contacts.tsv")
//	if checker.HasCriticalFailures(results) {
//	    // Handle failures
//	}
package preflight
