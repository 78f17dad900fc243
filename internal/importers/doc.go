// Package importers seeds the database from the legacy administration
// exports.
//
// # Architecture
//
// A seeding run is a fixed sequence of stages:
//
//	Import dir → ReadSource → []RawRecord → Stage.Run → Store
//	                                          ↓
//	                              Diagnostics, Lookups → output.Sink
//
// Every stage reads one source file (JSON array of flat objects keyed by
// the legacy column headers, or a CSV sibling), normalizes and validates
// the records, and writes them through the Store. Problems with single
// records are reported to the stage's Diagnostics and the record is
// dropped or degraded; only store failures and count mismatches abort the
// run.
//
// Stages hand ids to later stages through Lookups: folded legacy keys
// (names, project codes) mapped to database ids. Lookups are persisted as
// <name>-lookup.json, so a single stage can be rerun on its own with
// Options.Only.
//
// After every stage the destination row counts are compared with what the
// stage claims to have written. A difference is ErrCountMismatch.
//
// # Diagnostics
//
// Three severities:
//
//   - error: the record was dropped, the run continues
//   - warning: a value was degraded (sentinel address, unknown status)
//   - info: an intentional action (place already present, person merged)
//
// Each stage writes <stage>-diagnostics.json to the sink, also when the
// stage fails, unless the run is readonly.
//
// # Example Usage
//
//	pipeline := importers.NewPipeline(seedstore.New(db.DB), sink, importers.Options{
//		ImportDir: "./import",
//		Logger:    logger,
//	})
//	result, err := pipeline.Run(ctx)
package importers
