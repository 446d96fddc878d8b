// Package pkg provides the core libraries for gridview microgrid
// topology visualization.
//
// # Overview
//
// gridview keeps an editable canvas view of a microgrid site in sync with
// its authoritative component inventory. The pkg directory splits into
// three areas:
//
//  1. Domain: component (the inventory model) and topology (the
//     reconciliation engine at the heart of the application)
//  2. Infrastructure: store backends, the artifact cache, configuration,
//     structured errors, observability hooks
//  3. Output: render (Graphviz drawing surface) and pipeline (the
//     snapshot → reconcile → render runner shared by CLI and API)
//
// The topology engine depends on nothing but the component model; every
// drawing surface (browser canvas via internal/server, terminal editor,
// Graphviz export) consumes its plain ViewState contract.
package pkg
