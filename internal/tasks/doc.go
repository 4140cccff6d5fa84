// Package tasks runs long client-side operations against the recommendation API with real-time progress reporting.
//
// # Core Operations
//
// [Engine] provides two operations:
//
//  1. [Engine.BulkImport] : Create many recommendations
//     - Validates each item locally; invalid items are never sent
//     - Fans items out to a bounded worker pool
//     - Paces requests with a token-bucket limiter (x/time/rate)
//     - Treats name conflicts as skipped, not failed
//
//  2. [Engine.Export] : Fetch recent or top recommendations and write them with [formatter.WriteExport]
//
// # Progress Reporting
//
// Operations accept a ProgressUpdate channel. Sends use select with default, so a slow or absent
// reader never blocks the operation.
package tasks
