// Package collapse flattens folder trees and renames files in bulk.
//
// Both operations run in the same phases:
//
//   - Planning: the tree is captured once in a Snapshot (paths, ancestor
//     chains, names) before anything moves, and a Plan of moves is computed
//     from it. Planning never mutates the filesystem.
//   - Resolving: colliding destinations are renamed through the rename
//     template, or reported as a *pathkit.CollisionError.
//   - Executing: moves are applied one by one. The first failure stops the
//     run and is reported as a *pathkit.ExecutionError listing the moves that
//     completed and those still pending. Nothing is rolled back.
//   - CleaningUp (collapse only): emptied folders are removed bottom-up. The
//     collapse root is never removed.
//
// The engine assumes exclusive access to the tree for the duration of an
// operation; concurrent external changes give undefined results.
package collapse
