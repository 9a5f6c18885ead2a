// Package crawler discovers and fetches repository README documents.
//
// # Components
//
//   - ListingExtractor: fetches the listing page and extracts repository URLs
//   - ReadmeFetcher: locates the README permalink on a repository page and
//     downloads its content, with a bounded retry loop on the initial fetch
//   - ExtractRepositoryName: parses the display name out of README markup
//
// Design decision: We use goquery CSS selection rather than walking the
// DOM with golang.org/x/net/html directly because:
//  1. The extraction rules are literal CSS selectors on class/id markup
//  2. Selectors stay legible when the markup evolves
//  3. goquery tolerates the malformed HTML common on real pages
//
// # Error handling
//
// Nothing in this package propagates transport errors. The listing
// extractor fails soft to an empty list; the fetcher converts every
// failure to ErrReadmeNotFound after logging. Only name extraction
// returns a real error, and the pipeline isolates it per repository.
package crawler
