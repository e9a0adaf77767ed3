// Package stockbook provides the core types and operations for managing a
// single-user inventory ledger of physical stock (albums and merchandise)
// spread across named storage locations. It is designed to be local-first
// and auditable: every change to stock levels is recorded as a movement in
// an ordered history, and current stock is always reconstructible by
// replaying that history.
//
// The core functionalities include:
//   - Ledger Management: recording inbound and outbound movements with
//     per-item metadata (artist, category, last seen option) and an
//     availability check on outbound quantities.
//   - Periods: monthly opening-stock snapshots, advanced monotonically so
//     historical snapshots are never rewritten by back-dated entries.
//   - Schema Upgrade: a single idempotent normalization applied to every
//     loaded document, so older on-disk layouts keep loading forever.
//   - Reconciliation: aligning local stock with an external tabular
//     snapshot by synthesizing ordinary movements from quantity diffs,
//     never by overwriting the stock map.
//   - Persistence: whole-document JSON with atomic replace-on-write,
//     timestamped backups, corruption quarantine, and a coalescing
//     background saver.
//
// This package serves as the foundational logic for the `sbk` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package stockbook
