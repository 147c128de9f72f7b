// Package importers loads quote files produced by the JSON exporter, or any
// JSON array of {"text", "category"} objects, into the quote store.
//
// The flow is:
//
//	upload → Archiver (audit copy) → ParseQuotes → Sink.BulkAdd
//
// A file whose top level is not a JSON array is rejected with ErrInvalidFile
// and nothing is added. Inside a valid array each entry is judged on its own:
// entries that are not objects with string text and category are counted as
// malformed, and entries with blank fields are skipped by the store.
//
// # Example Usage
//
//	pipeline := importers.NewPipeline(book.Store, audit.NewAuditor(cfg.Audit.Dir))
//	result, err := pipeline.Import(ctx, contents)
//	if errors.Is(err, importers.ErrInvalidFile) {
//		// show err.Error() to the user
//	}
package importers
