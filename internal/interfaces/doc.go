// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - PersoonStore, OrganisatieStore, PlaatsStore, LocatieStore, ProjectStore,
//     AanmeldingStore, ImportRunStore: CRUD behind the HTTP controllers
//     (internal/http/stores.go), implemented by internal/database/*.
//   - importers.Store: the bulk read/write surface of the seeding pipeline
//     (internal/importers/store.go), implemented by internal/database/seedstore.
//
// ## Output
//
//   - output.Sink: where diagnostics and lookup files go: a local directory,
//     an S3 bucket or memory (tests).
//
// ## Telemetry
//
//   - importers.Observer, seeding.Observer: per-diagnostic and per-stage
//     callbacks, implemented by internal/metrics.
//
// ## Background Work
//
//   - http.ImportQueue: enqueues seeding runs (internal/tasks.SeedRunEnqueuer).
//   - tasks.SeedExecutor, tasks.ImportRunCleaner: what the backlite
//     processors call.
//
// # Adding a New Seeding Stage
//
//  1. Add a stage name constant and an entry to DefaultStages() in
//     internal/importers/stages.go, after the stages it depends on. The
//     entry names the output file stem, the Counts field it is tallied
//     against and the function that runs it.
//
//  2. Write the stage function in its own internal/importers/stage_*.go. Report bad
//     records through the Diagnostics it receives; return an error only
//     when the run must stop.
//
//  3. Add any bulk method it needs to importers.Store and implement it in
//     internal/database/seedstore.
//
// # Adding a New Report
//
//  1. Add a definition with its raw SQL to internal/reports/reports.go.
//
//  2. It is served at GET /api/rapportages/<name> and by `beheer report <name>`.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
