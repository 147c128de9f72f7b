// Package interfaces documents the core abstractions used throughout the application.
//
// The quote book is wired from small interfaces declared by their consumers,
// so every package can be tested against fakes. checks.go pins the concrete
// types to those interfaces at compile time.
//
// # Interface Categories
//
// ## Storage
//
//   - storage.Store: get/set a named blob (internal/storage/client.go)
//   - storage.SettingsBackend: the settings table behind PersistentStore
//
// ## Import / Export
//
//   - importers.Sink: bulk insert of parsed quotes (quotebook.Store)
//   - importers.Archiver: keeps a copy of every upload (audit.Auditor)
//   - exporters.QuoteSource: ordered quote snapshot (quotebook.Store)
//
// ## Sync Engine
//
//   - scheduler.Fetcher: remote quote source (remote.Client)
//   - scheduler.Merger: insert-if-absent (quotebook.Store)
//   - scheduler.StatusRecorder: last poll outcome (settingsstore.SettingsStore)
//
// ## HTTP surface
//
//   - http.QuoteImporter, http.QuoteExporter, http.Notifier, http.SyncRunner,
//     http.SyncStatusReader, http.QuoteEnqueuer, http.TaskStatusReader,
//     http.HealthChecker (internal/http/config.go)
//
// # Adding an Export Format
//
//  1. Add a Format constant and a case to ParseFormat in internal/exporters.
//  2. Render it in Exporter.Export, setting FileName and ContentType.
//  3. The HTTP and CLI export commands pick it up through ?format= and --format.
package interfaces
